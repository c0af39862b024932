package queries

import (
	"errors"
	"strings"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

var (
	ErrFindVolunteersQueryIsNotConstructed = errors.New(
		"FindVolunteersQuery must be created via NewFindVolunteersQuery constructor",
	)
)

// FindVolunteersQuery looks up the volunteers serving a city.
//
// Example:
//
//	query, err := NewFindVolunteersQuery(" Guntur ", true)
//	if err != nil {
//	    return err
//	}
//	volunteers, err := handler.Handle(ctx, query)
type FindVolunteersQuery struct {
	city            string
	requireApproved bool

	guard guard.ConstructorGuard
}

// NewFindVolunteersQuery requires a city that is not blank after trimming.
func NewFindVolunteersQuery(city string, requireApproved bool) (FindVolunteersQuery, error) {
	if strings.TrimSpace(city) == "" {
		return FindVolunteersQuery{}, errs.NewValueIsRequiredError("city")
	}
	return FindVolunteersQuery{
		city:            city,
		requireApproved: requireApproved,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q FindVolunteersQuery) Validate() error {
	return q.guard.Validate(ErrFindVolunteersQueryIsNotConstructed)
}

func (q FindVolunteersQuery) City() string {
	return q.city
}

func (q FindVolunteersQuery) NormalizedCity() string {
	return kernel.NormalizeCity(q.city)
}

func (q FindVolunteersQuery) RequireApproved() bool {
	return q.requireApproved
}

// FindVolunteersQueryResponse is one matched volunteer.
type FindVolunteersQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Email    string
	Contact  string
	City     string
	Approved bool
}
