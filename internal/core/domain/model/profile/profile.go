// Package profile models the user profiles the core reads but never writes:
// volunteers looked up for matching and snapshots, donors and requesters
// looked up for notification addresses.
package profile

import (
	"errors"
	"strings"

	"aidmatch/internal/core/domain/model/kernel"
)

// ErrProfileIsNotConstructed is returned when a zero-value Profile is used.
var ErrProfileIsNotConstructed = errors.New("profile must be created via RestoreProfile")

// State is the persisted shape of a profile.
type State struct {
	ID       kernel.UUID
	Role     kernel.Role
	Name     string
	Email    string
	Contact  string
	City     kernel.City
	Approved bool
}

// Profile is a read-only view of a user.
type Profile struct {
	state         State
	isConstructed bool
}

// RestoreProfile validates identifier, role and city.
func RestoreProfile(s State) (*Profile, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.Role.Validate(),
		s.City.Validate(),
	); err != nil {
		return nil, err
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Contact = strings.TrimSpace(s.Contact)
	return &Profile{state: s, isConstructed: true}, nil
}

func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

func (p *Profile) ID() kernel.UUID { return p.state.ID }
func (p *Profile) Role() kernel.Role { return p.state.Role }
func (p *Profile) Name() string { return p.state.Name }
func (p *Profile) Email() string { return p.state.Email }
func (p *Profile) Contact() string { return p.state.Contact }
func (p *Profile) City() kernel.City { return p.state.City }
func (p *Profile) Approved() bool { return p.state.Approved }
func (p *Profile) Snapshot() State { return p.state }

// IsVolunteer reports whether the profile can be matched and assigned.
func (p *Profile) IsVolunteer() bool {
	return p.state.Role == kernel.RoleVolunteer
}

// Assignee returns the display fields copied onto an entity at assignment.
// The contact falls back to the email address when no phone is on file.
func (p *Profile) Assignee() kernel.ProfileSnapshot {
	contact := p.state.Contact
	if contact == "" {
		contact = p.state.Email
	}
	return kernel.ProfileSnapshot{ID: p.state.ID, Name: p.state.Name, Contact: contact}
}

// Ref returns the matcher's view of a volunteer.
func (p *Profile) Ref() VolunteerRef {
	return VolunteerRef{
		ID:       p.state.ID,
		Name:     p.state.Name,
		Email:    p.state.Email,
		Contact:  p.state.Contact,
		City:     p.state.City.Name(),
		Approved: p.state.Approved,
	}
}

// VolunteerRef is a volunteer returned by the location matcher.
type VolunteerRef struct {
	ID       kernel.UUID
	Name     string
	Email    string
	Contact  string
	City     string
	Approved bool
}
