package report

import (
	"fmt"
	"os"
)

// TextSpan represents a range or "span" of source text.  Type expressions are
// always single-line so only the columns are significant: the span starts at
// the first character and ends one past the last character.  Columns are
// zero-indexed.
type TextSpan struct {
	StartCol, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartCol: start.StartCol,
		EndCol:   end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error that occurs in a context in which
// the source text is known by the error handler and thus doesn't need to be
// passed along with the error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	if lce.Span == nil {
		return lce.Message
	}

	return fmt.Sprintf("%d:%d: %s", lce.Span.StartCol+1, lce.Span.EndCol, lce.Message)
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level and always abort the process.
func ReportICE(message string, args ...interface{}) {
	r := ensure()
	r.m.Lock()
	defer r.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: unreadable unit
// files, bad output paths, etc.
func ReportFatal(message string, args ...interface{}) {
	r := ensure()
	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		defer r.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportCompileError reports a compilation error: ie. an erroneous unit.  The
// unitPath is the path to the unit file and where describes the element of the
// unit the error is attached to (eg. "definition Box").
func ReportCompileError(unitPath, where string, message string, args ...interface{}) {
	r := ensure()
	r.m.Lock()
	defer r.m.Unlock()

	r.isErr = true

	if r.logLevel > LogLevelSilent {
		displayCompileMessage("error", unitPath, where, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of the
// same form as those to ReportCompileError.
func ReportCompileWarning(unitPath, where string, message string, args ...interface{}) {
	r := ensure()
	if r.logLevel > LogLevelError {
		r.m.Lock()
		defer r.m.Unlock()

		r.warnCount++

		displayCompileMessage("warning", unitPath, where, fmt.Sprintf(message, args...))
	}
}

// ReportExprError reports an error inside a type expression.  The offending
// expression is displayed with the span underlined.
func ReportExprError(unitPath, where, expr string, lce *LocalCompileError) {
	r := ensure()
	r.m.Lock()
	defer r.m.Unlock()

	r.isErr = true

	if r.logLevel > LogLevelSilent {
		displayCompileMessage("error", unitPath, where, lce.Message)
		if lce.Span != nil {
			displayExprText(expr, lce.Span)
		}
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(unitPath string, err error) {
	r := ensure()
	r.m.Lock()
	defer r.m.Unlock()

	r.isErr = true

	if r.logLevel > LogLevelSilent {
		displayStdError(unitPath, err)
	}
}

// ReportInfo displays an informational message at the verbose log level.
func ReportInfo(tag, message string, args ...interface{}) {
	r := ensure()
	if r.logLevel == LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		displayInfo(tag, fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return ensure().isErr
}

// WarningCount returns the number of warnings displayed so far.
func WarningCount() int {
	r := ensure()
	r.m.Lock()
	defer r.m.Unlock()

	return r.warnCount
}
