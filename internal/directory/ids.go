package directory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/facultyboard/internal/constants"
)

// IDGenerator produces the id for the seq-th faculty added to a directory.
// seq is monotonic and never reused, even after removals.
type IDGenerator func(seq int) string

// SequenceGenerator yields zero padded ids such as fac-008.
func SequenceGenerator(seq int) string {
	return fmt.Sprintf("%s%0*d", constants.FacultyIDPrefix, constants.FacultyIDWidth, seq)
}

// UUIDGenerator yields opaque ids such as fac-3f1c...; seq is ignored.
func UUIDGenerator(int) string {
	return constants.FacultyIDPrefix + uuid.NewString()
}

// GeneratorFor maps a configured id scheme to its generator.
func GeneratorFor(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", constants.IDSchemeSequence:
		return SequenceGenerator, nil
	case constants.IDSchemeUUID:
		return UUIDGenerator, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q (want %s or %s)", scheme, constants.IDSchemeSequence, constants.IDSchemeUUID)
	}
}

// sequenceOf extracts N from a fac-N id, or returns 0.
func sequenceOf(id string) int {
	rest, ok := strings.CutPrefix(id, constants.FacultyIDPrefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
