package domain

// Mpa is a fixed content-rating reference entity (G, PG, PG-13, R, NC-17).
// The reference set is seeded out-of-band and is read-only for the API.
type Mpa struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Genre is a fixed film-category reference entity, attached to films
// many-to-many.
type Genre struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Film is the main film model. ID is assigned by the store on creation and
// immutable afterwards. Likes holds ids of users who liked the film, with
// set semantics.
type Film struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name" validate:"required"`
	ReleaseDate Date    `json:"releaseDate" db:"release_date" validate:"required,releasedate"`
	Description string  `json:"description" db:"description" validate:"max=200"`
	Duration    int     `json:"duration" db:"duration" validate:"gt=0"`
	Rate        int     `json:"rate" db:"rate"`
	Mpa         Mpa     `json:"mpa" db:"-"`
	Genres      []Genre `json:"genres" db:"-"`
	Likes       []int   `json:"likes" db:"-"`
}
