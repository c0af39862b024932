package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/pkg/validation"
)

// ProfileSeedEntry is one element of the JSON array in PROFILE_SEED_FILE.
type ProfileSeedEntry struct {
	ID       string `json:"id"       validate:"required,uuid"`
	Role     string `json:"role"     validate:"required,oneof=community volunteer donor admin"`
	Name     string `json:"name"     validate:"required,max=200"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Contact  string `json:"contact"  validate:"max=200"`
	City     string `json:"city"     validate:"required,max=120"`
	Approved bool   `json:"approved"`
}

func (e ProfileSeedEntry) toProfile() (*profile.Profile, error) {
	if err := validation.Struct(e); err != nil {
		return nil, err
	}

	id, idErr := kernel.UUIDFromString(e.ID)
	role, roleErr := kernel.ParseRole(e.Role)
	city, cityErr := kernel.NewCity(e.City)
	if err := errors.Join(idErr, roleErr, cityErr); err != nil {
		return nil, err
	}

	return profile.RestoreProfile(profile.State{
		ID:       id,
		Role:     role,
		Name:     e.Name,
		Email:    e.Email,
		Contact:  e.Contact,
		City:     city,
		Approved: e.Approved,
	})
}

// ParseProfileSeed decodes a JSON array of ProfileSeedEntry. Unknown fields
// and invalid entries fail the whole seed.
func ParseProfileSeed(r io.Reader) ([]*profile.Profile, error) {
	var entries []ProfileSeedEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode profile seed: %w", err)
	}

	profiles := make([]*profile.Profile, 0, len(entries))
	for i, entry := range entries {
		p, err := entry.toProfile()
		if err != nil {
			return nil, fmt.Errorf("profile seed entry %d: %w", i, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// LoadProfileSeed reads and parses the seed file at path.
func LoadProfileSeed(path string) ([]*profile.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile seed: %w", err)
	}
	defer f.Close()

	return ParseProfileSeed(f)
}
