package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the full HTTP surface.
func NewRouter(films *FilmHandler, users *UserHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))

	filmsRouter := router.PathPrefix("/films").Subrouter()
	filmsRouter.HandleFunc("", films.Create).Methods(http.MethodPost)
	filmsRouter.HandleFunc("", films.Update).Methods(http.MethodPut)
	filmsRouter.HandleFunc("", films.Delete).Methods(http.MethodDelete)
	filmsRouter.HandleFunc("", films.FindAll).Methods(http.MethodGet)
	// /films/popular must be registered before /films/{id}.
	filmsRouter.HandleFunc("/popular", films.Popular).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id}", films.Get).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id}/like/{userId}", films.Like).Methods(http.MethodPut)
	filmsRouter.HandleFunc("/{id}/like/{userId}", films.Dislike).Methods(http.MethodDelete)

	router.HandleFunc("/genres", films.FindAllGenres).Methods(http.MethodGet)
	router.HandleFunc("/genres/{id}", films.GetGenre).Methods(http.MethodGet)
	router.HandleFunc("/mpa", films.FindAllMpa).Methods(http.MethodGet)
	router.HandleFunc("/mpa/{id}", films.GetMpa).Methods(http.MethodGet)

	usersRouter := router.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("", users.Create).Methods(http.MethodPost)
	usersRouter.HandleFunc("", users.Update).Methods(http.MethodPut)
	usersRouter.HandleFunc("", users.Delete).Methods(http.MethodDelete)
	usersRouter.HandleFunc("", users.FindAll).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id}", users.Get).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id}/friends", users.Friends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id}/friends/common/{otherId}", users.CommonFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id}/friends/{friendId}", users.AddFriend).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{id}/friends/{friendId}", users.RemoveFriend).Methods(http.MethodDelete)

	return router
}
