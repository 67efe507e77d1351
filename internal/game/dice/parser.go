package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Spec is a parsed single-die specification such as "d6".
type Spec struct {
	Raw   string // original input string
	Sides int    // faces on the die
}

// Parse parses a single-die specification.
// Supported forms: "d6", "D4", "1d6".
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a Spec with Sides >= 2 or a descriptive error.
func Parse(expr string) (Spec, error) {
	if expr == "" {
		return Spec{}, fmt.Errorf("dice: empty expression")
	}

	raw := expr
	s := strings.ToLower(strings.TrimSpace(expr))

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Spec{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	// Hog rolls one die at a time; a count other than 1 is meaningless here.
	if countStr := s[:dIdx]; countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return Spec{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if count != 1 {
			return Spec{}, fmt.Errorf("dice: die count in %q must be 1, got %d", raw, count)
		}
	}

	sides, err := strconv.Atoi(s[dIdx+1:])
	if err != nil {
		return Spec{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 2 {
		return Spec{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", raw)
	}

	return Spec{Raw: raw, Sides: sides}, nil
}

// MustParse parses expr and panics on error. Useful for package-level values.
//
// Precondition: expr must be a valid die specification.
func MustParse(expr string) Spec {
	s, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return s
}

// New builds a fair die for s backed by src.
//
// Precondition: src must be non-nil.
func (s Spec) New(src Source) *Standard {
	return NewStandard(s.Sides, src)
}
