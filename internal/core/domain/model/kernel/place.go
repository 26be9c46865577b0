package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// MaxPlaceLength bounds a place name so it fits the varchar(255) column.
const MaxPlaceLength = 255

var ErrPlaceIsNotConstructed = errs.NewValueIsRequiredError(
	"place must be created via NewPlace constructor")

// Place is a named start or end point of a route, e.g. "Warehouse A".
// Surrounding whitespace is trimmed; the remaining name must not be empty.
type Place struct { //nolint:recvcheck //using for validation
	name  string
	guard guard.ConstructorGuard
}

func NewPlace(name string) (Place, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Place{}, errs.NewValueIsRequiredError("place")
	}
	if len(trimmed) > MaxPlaceLength {
		return Place{}, errs.NewValueIsOutOfRangeError("place length", len(trimmed), 1, MaxPlaceLength)
	}

	return Place{name: trimmed, guard: guard.NewConstructorGuard()}, nil
}

// MustNewPlace is NewPlace for literals known to be valid. It panics otherwise.
func MustNewPlace(name string) Place {
	p, err := NewPlace(name)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}

func (p Place) String() string {
	return p.name
}

func (p Place) IsEqual(other Place) bool {
	return p.name == other.name
}
