package search

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("cannot parse document")
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("document not found")
)

// ParseError reports a source that could not be turned into a Document. The
// source is skipped; loading continues.
type ParseError struct {
	Source  string
	Missing []string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", e.Source)
	switch {
	case len(e.Missing) > 0 && e.Err != nil:
		fmt.Fprintf(&b, "missing required field(s) %s: %v", strings.Join(e.Missing, ", "), e.Err)
	case len(e.Missing) > 0:
		fmt.Fprintf(&b, "missing required field(s) %s", strings.Join(e.Missing, ", "))
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(ErrParse.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFoundError reports an id that is not present in the snapshot consulted.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// JoinWarnings folds parse warnings into a single error, or nil when there are none.
func JoinWarnings(warns []*ParseError) error {
	var merr *multierror.Error
	for _, w := range warns {
		merr = multierror.Append(merr, w)
	}
	return merr.ErrorOrNil()
}
