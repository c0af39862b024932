package kernel

import (
	"strings"

	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCityIsNotConstructed is returned when a zero-value City is used.
var ErrCityIsNotConstructed = errs.NewValueIsRequiredError("city must be created via NewCity")

// City keeps a city name as the user typed it together with the normalized
// form used for exact-match volunteer lookup. Both are persisted.
//
// Example:
//
//	city, err := kernel.NewCity("  Guntur ")
//	city.Name()       // "Guntur"
//	city.Normalized() // "guntur"
type City struct { //nolint:recvcheck //using for validation
	name       string
	normalized string
	guard      guard.ConstructorGuard
}

// NewCity trims the name and derives its normalized form. Blank names are
// rejected.
func NewCity(name string) (City, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return City{}, errs.NewValueIsRequiredError("city")
	}

	return City{
		name:       trimmed,
		normalized: NormalizeCity(trimmed),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NormalizeCity trims and lowercases a city name. Matching is exact string
// equality on the result; no fuzzy or alias matching happens here.
func NormalizeCity(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// Validate returns ErrCityIsNotConstructed for the zero value.
func (c City) Validate() error {
	return c.guard.Validate(ErrCityIsNotConstructed)
}

// Name returns the trimmed, original-case name.
func (c City) Name() string {
	return c.name
}

// Normalized returns the lowercase lookup key.
func (c City) Normalized() string {
	return c.normalized
}

// Matches reports whether other names the same city after normalization.
func (c City) Matches(other string) bool {
	return c.normalized != "" && c.normalized == NormalizeCity(other)
}

func (c City) String() string {
	return c.name
}
