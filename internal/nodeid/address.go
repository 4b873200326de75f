package nodeid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/superlumen/internal/errs"
)

// Address is the path of node ids from a root to a descendant. The zero value
// addresses the root itself.
type Address struct {
	Path []string
}

// Parse creates an Address from its dotted string form. The empty string is
// the root address.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, nil
	}
	var addr Address
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return Address{}, fmt.Errorf("%w: address %q contains an empty segment", errs.ErrInvalidArgument, raw)
		}
		if err := Validate(segment); err != nil {
			return Address{}, fmt.Errorf("address %q: %w", raw, err)
		}
		addr.Path = append(addr.Path, segment)
	}
	return addr, nil
}

// String serializes the Address into its dotted form.
func (a Address) String() string {
	return strings.Join(a.Path, ".")
}

// Child returns a new address one level below a.
func (a Address) Child(id string) Address {
	path := make([]string, 0, len(a.Path)+1)
	path = append(path, a.Path...)
	return Address{Path: append(path, id)}
}

// IsRoot reports whether the address has no segments.
func (a Address) IsRoot() bool {
	return len(a.Path) == 0
}

// Equal checks two addresses segment by segment.
func (a Address) Equal(other Address) bool {
	return slices.Equal(a.Path, other.Path)
}
