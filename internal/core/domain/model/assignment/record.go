// Package assignment keeps the per-volunteer history of the requests and
// donations they were assigned to.
package assignment

import (
	"errors"
	"slices"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a zero-value Record is used.
var ErrRecordIsNotConstructed = errors.New("assignment record must be created via NewRecord")

// Key identifies a record. There is at most one record per key.
type Key struct {
	EntityType  kernel.EntityType
	EntityID    kernel.UUID
	VolunteerID kernel.UUID
}

func (k Key) Validate() error {
	_, typeErr := kernel.ParseEntityType(k.EntityType.String())
	return errors.Join(typeErr, k.EntityID.Validate(), k.VolunteerID.Validate())
}

// Record is the ordered list of statuses an entity reached while assigned to
// a volunteer.
type Record struct {
	key           Key
	statuses      []string
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewRecord starts a history with its first status.
func NewRecord(key Key, status string, at time.Time) (*Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if status == "" {
		return nil, errs.NewValueIsRequiredError("status")
	}
	return &Record{
		key:           key,
		statuses:      []string{status},
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreRecord rebuilds a record from persisted state.
func RestoreRecord(key Key, statuses []string, createdAt, updatedAt time.Time) (*Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return &Record{
		key:           key,
		statuses:      slices.Clone(statuses),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// Append records a newly reached status. Repeating the latest status is a
// no-op so a replayed upsert does not grow the history.
func (r *Record) Append(status string, at time.Time) {
	if n := len(r.statuses); n > 0 && r.statuses[n-1] == status {
		return
	}
	r.statuses = append(r.statuses, status)
	r.updatedAt = at
}

func (r *Record) Key() Key {
	return r.key
}

func (r *Record) Statuses() []string {
	return slices.Clone(r.statuses)
}

// Latest returns the most recent status.
func (r *Record) Latest() string {
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}
