package nodeid

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"github.com/specialistvlad/superlumen/internal/errs"
)

const (
	prefixMin = 1000000
	prefixMax = 9999999
)

var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// now is swapped in tests.
var now = time.Now

// New returns a fresh id: a seven digit random prefix followed by a random
// scalar of the current millisecond timestamp.
func New() string {
	prefix := prefixMin + rand.IntN(prefixMax-prefixMin+1)
	millis := float64(now().UnixMilli())
	suffix := math.Round(millis * 10000 * rand.Float64())
	return strconv.Itoa(prefix) + strconv.FormatFloat(suffix, 'f', 0, 64)
}

// Validate checks a caller supplied id.
func Validate(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id cannot be empty", errs.ErrInvalidArgument)
	}
	if !segmentRegex.MatchString(id) {
		return fmt.Errorf("%w: invalid id %q", errs.ErrInvalidArgument, id)
	}
	if id == "-" {
		return fmt.Errorf("%w: invalid id %q", errs.ErrInvalidArgument, id)
	}
	return nil
}
