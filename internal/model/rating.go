package model

import "time"

const (
	MinRating = 1
	MaxRating = 10
)

// Rating is a score given to one movie.  It is deleted together with that
// movie.
type Rating struct {
	ID        uint64    `json:"id"`        // ratings.id
	Value     int       `json:"value"`     // ratings.value, 1..10
	Comment   *string   `json:"comment"`   // ratings.comment (nullable)
	MovieID   uint64    `json:"movieId"`   // ratings.movie_id
	CreatedAt time.Time `json:"createdAt"` // ratings.created_at
	UpdatedAt time.Time `json:"updatedAt"` // ratings.updated_at

	Movie *Movie `json:"movie,omitzero"`
}

type RatingInput struct {
	Value   int     `json:"value" validate:"required,min=1,max=10"`
	Comment *string `json:"comment"`
	MovieID uint64  `json:"movieId" validate:"required,gt=0"`
}

// RatingPatch never moves a rating to another movie.
type RatingPatch struct {
	Value   *int    `json:"value" validate:"omitnil,min=1,max=10"`
	Comment *string `json:"comment"`
}

func (p RatingPatch) Apply(r *Rating) {
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.Comment != nil {
		r.Comment = p.Comment
	}
}
