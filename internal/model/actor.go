package model

import "time"

// Actor is a performer that can appear in many movies.
type Actor struct {
	ID        uint64    `json:"id"`        // actors.id
	FirstName string    `json:"firstName"` // actors.first_name
	LastName  string    `json:"lastName"`  // actors.last_name
	BirthDate *Date     `json:"birthDate"` // actors.birth_date (nullable)
	CreatedAt time.Time `json:"createdAt"` // actors.created_at
	UpdatedAt time.Time `json:"updatedAt"` // actors.updated_at

	Movies []Movie `json:"movies,omitzero"`
}

// FullName is the string actor search matches against.
func (a Actor) FullName() string { return a.FirstName + " " + a.LastName }

type ActorInput struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	BirthDate *Date  `json:"birthDate"`
}

type ActorPatch struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=255"`
	LastName  *string `json:"lastName" validate:"omitnil,min=1,max=255"`
	BirthDate *Date   `json:"birthDate"`
}

func (p ActorPatch) Apply(a *Actor) {
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.BirthDate != nil {
		a.BirthDate = p.BirthDate
	}
}
