package persist

import "errors"

var (
	// ErrBadHeader is returned when a database is opened and its header does
	// not match the expected value.
	ErrBadHeader = errors.New("database header does not match the expected header")
	// ErrBadVersion is returned when a database is opened and its version
	// does not match the expected value.
	ErrBadVersion = errors.New("database version does not match the expected version")
)

// Metadata contains the header and version of the data being stored, and is
// also present in the header of every persist file, so that the data being
// loaded can be sanity checked.
type Metadata struct {
	Header  string
	Version string
}
