package generate

import (
	"fmt"

	"actorc/types"
)

// ErrorKind classifies layout construction failures.
type ErrorKind int

// Enumeration of error kinds.
const (
	// ErrNameNotComputable means no canonical name could be computed for a
	// type: eg. it still contains type parameters.
	ErrNameNotComputable ErrorKind = iota + 1

	// ErrFieldFailed means a field of a layout could not be resolved.
	ErrFieldFailed

	// ErrVerifyFailed means the trace function of a layout was rejected by
	// the verification pass.
	ErrVerifyFailed
)

func (ek ErrorKind) String() string {
	switch ek {
	case ErrNameNotComputable:
		return "name not computable"
	case ErrFieldFailed:
		return "field failed"
	case ErrVerifyFailed:
		return "verification failed"
	}

	return "unknown"
}

// GenError is a recoverable failure of type generation.  Whenever a GenError
// is returned, the layout table is left as it was before the failing call.
type GenError struct {
	Kind ErrorKind

	// Layout is the name of the layout being built, if any.
	Layout string

	// Type is the offending type: the unnameable type, the failing field's
	// type or the type of the layout that failed verification.
	Type types.Type

	// Field is the index of the failing field for ErrFieldFailed.
	Field int

	Err error
}

func (ge *GenError) Error() string {
	switch ge.Kind {
	case ErrNameNotComputable:
		return fmt.Sprintf("cannot name type `%s`: %s", repr(ge.Type), ge.Err)
	case ErrFieldFailed:
		return fmt.Sprintf("layout `%s`: field %d of type `%s`: %s", ge.Layout, ge.Field, repr(ge.Type), ge.Err)
	case ErrVerifyFailed:
		return fmt.Sprintf("layout `%s`: trace function rejected: %s", ge.Layout, ge.Err)
	}

	return fmt.Sprintf("type generation failed: %s", ge.Err)
}

func (ge *GenError) Unwrap() error {
	return ge.Err
}
