package posts

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no source file exists for a post id.
	ErrNotFound = errors.New("post not found")
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("post could not be parsed")
)

// ParseError reports a source file that exists but could not be read,
// split or rendered.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("post %q: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
