package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KseniyaA/java-filmorate/internal/domain"
	"github.com/KseniyaA/java-filmorate/internal/service"
)

// UserHandler translates HTTP requests into UserService calls.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode user body", slog.String("error", err.Error()))
		respondBadRequest(w, r, h.logger, "invalid request payload")
		return
	}
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "POST /users", slog.String("login", user.Login))

	created, err := h.users.Create(ctx, &user)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, created)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode user body", slog.String("error", err.Error()))
		respondBadRequest(w, r, h.logger, "invalid request payload")
		return
	}
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "PUT /users", slog.Int("userID", user.ID))

	updated, err := h.users.Update(ctx, &user)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode user body", slog.String("error", err.Error()))
		respondBadRequest(w, r, h.logger, "invalid request payload")
		return
	}
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "DELETE /users", slog.Int("userID", user.ID))

	if err := h.users.Delete(ctx, user.ID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "GET /users/{id}", slog.Int("userID", id))

	user, err := h.users.Get(ctx, id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

func (h *UserHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "GET /users")

	users, err := h.users.FindAll(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, users)
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, h.logger, "friendId")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "PUT /users/{id}/friends/{friendId}", slog.Int("userID", userID), slog.Int("friendID", friendID))

	if err := h.users.AddFriend(ctx, userID, friendID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, h.logger, "friendId")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "DELETE /users/{id}/friends/{friendId}", slog.Int("userID", userID), slog.Int("friendID", friendID))

	if err := h.users.RemoveFriend(ctx, userID, friendID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

func (h *UserHandler) Friends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "GET /users/{id}/friends", slog.Int("userID", userID))

	friends, err := h.users.Friends(ctx, userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, friends)
}

func (h *UserHandler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	otherID, ok := pathInt(w, r, h.logger, "otherId")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "GET /users/{id}/friends/common/{otherId}", slog.Int("userID", userID), slog.Int("otherID", otherID))

	friends, err := h.users.CommonFriends(ctx, userID, otherID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, friends)
}
