package model

import "time"

// Movie is a catalog entry.  Actors and Ratings are populated only when the
// repository loads those relations; nil means "not loaded" and is omitted
// from JSON, an empty slice renders as [].
type Movie struct {
	ID          uint64    `json:"id"`          // movies.id
	Title       string    `json:"title"`       // movies.title
	Description *string   `json:"description"` // movies.description (nullable)
	ReleaseDate *Date     `json:"releaseDate"` // movies.release_date (nullable)
	Genre       *string   `json:"genre"`       // movies.genre (nullable)
	CreatedAt   time.Time `json:"createdAt"`   // movies.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // movies.updated_at

	Actors  []Actor  `json:"actors,omitzero"`
	Ratings []Rating `json:"ratings,omitzero"`
}

// MovieInput is the body accepted when creating a movie.
type MovieInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description *string  `json:"description"`
	ReleaseDate *Date    `json:"releaseDate"`
	Genre       *string  `json:"genre" validate:"omitnil,max=255"`
	ActorIDs    []uint64 `json:"actorIds" validate:"omitempty,dive,gt=0"`
}

// MoviePatch carries a partial update.  A nil field is left untouched.
// ActorIDs distinguishes three cases: nil keeps the current cast, a pointer
// to an empty slice clears it, anything else replaces it.
type MoviePatch struct {
	Title       *string   `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string   `json:"description"`
	ReleaseDate *Date     `json:"releaseDate"`
	Genre       *string   `json:"genre" validate:"omitnil,max=255"`
	ActorIDs    *[]uint64 `json:"actorIds" validate:"omitnil,dive,gt=0"`
}

// Apply merges the present fields onto m.
func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = p.Description
	}
	if p.ReleaseDate != nil {
		m.ReleaseDate = p.ReleaseDate
	}
	if p.Genre != nil {
		m.Genre = p.Genre
	}
}
