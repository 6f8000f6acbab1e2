package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFilm() *Film {
	return &Film{
		Name:        "Matrix",
		ReleaseDate: NewDate(1999, time.March, 31),
		Description: "A hacker discovers reality is a simulation",
		Duration:    136,
		Mpa:         Mpa{ID: 4},
	}
}

func validUser() *User {
	return &User{
		Email:    "neo@matrix.io",
		Login:    "neo",
		Name:     "Thomas Anderson",
		Birthday: NewDate(1971, time.September, 13),
	}
}

func TestValidateFilm(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(f *Film)
		wantErr bool
	}{
		{name: "valid film", mutate: func(f *Film) {}, wantErr: false},
		{name: "empty name", mutate: func(f *Film) { f.Name = "" }, wantErr: true},
		{name: "description over 200 chars", mutate: func(f *Film) { f.Description = strings.Repeat("x", 201) }, wantErr: true},
		{name: "description exactly 200 chars", mutate: func(f *Film) { f.Description = strings.Repeat("x", 200) }, wantErr: false},
		{name: "empty description", mutate: func(f *Film) { f.Description = "" }, wantErr: false},
		{name: "release before first screening", mutate: func(f *Film) { f.ReleaseDate = NewDate(1895, time.December, 27) }, wantErr: true},
		{name: "release exactly 1895-12-28", mutate: func(f *Film) { f.ReleaseDate = EarliestReleaseDate }, wantErr: false},
		{name: "missing release date", mutate: func(f *Film) { f.ReleaseDate = Date{} }, wantErr: true},
		{name: "zero duration", mutate: func(f *Film) { f.Duration = 0 }, wantErr: true},
		{name: "negative duration", mutate: func(f *Film) { f.Duration = -10 }, wantErr: true},
		{name: "one minute duration", mutate: func(f *Film) { f.Duration = 1 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			film := validFilm()
			tt.mutate(film)
			err := v.Struct(film)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	v := NewValidator()

	tomorrow := Date{Time: time.Now().AddDate(0, 0, 1)}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{name: "valid user", mutate: func(u *User) {}, wantErr: false},
		{name: "empty email", mutate: func(u *User) { u.Email = "" }, wantErr: true},
		{name: "email without at sign", mutate: func(u *User) { u.Email = "neo.matrix.io" }, wantErr: true},
		{name: "email without domain", mutate: func(u *User) { u.Email = "neo@" }, wantErr: true},
		{name: "empty login", mutate: func(u *User) { u.Login = "" }, wantErr: true},
		{name: "login with space", mutate: func(u *User) { u.Login = "neo anderson" }, wantErr: true},
		{name: "empty name is allowed", mutate: func(u *User) { u.Name = "" }, wantErr: false},
		{name: "birthday in the future", mutate: func(u *User) { u.Birthday = tomorrow }, wantErr: true},
		{name: "missing birthday", mutate: func(u *User) { u.Birthday = Date{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(user)
			err := v.Struct(user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	user := validUser()
	user.Name = "  "
	user.DefaultName()
	assert.Equal(t, "neo", user.Name)

	user.Name = "Trinity"
	user.DefaultName()
	assert.Equal(t, "Trinity", user.Name)
}

func TestDateJSON(t *testing.T) {
	film := validFilm()

	data, err := json.Marshal(film)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"releaseDate":"1999-03-31"`)

	var decoded Film
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.ReleaseDate.Equal(film.ReleaseDate.Time))

	var bad Film
	err = json.Unmarshal([]byte(`{"name":"x","releaseDate":"31-03-1999"}`), &bad)
	assert.Error(t, err)
}
