package report

import (
	"fmt"
	"os"
)

// Enumeration of the kinds of compile errors the checker can raise.
const (
	ErrSyntax             = iota // Malformed source text.
	ErrUndefinedName             // Reference to a name with no visible definition.
	ErrRedeclaration             // A name declared twice in the same scope.
	ErrTypeMismatch              // Operand, branch, loop-break, or cast type conflicts.
	ErrNotAssignable             // Assignment to something that is not a mutable place.
	ErrInvalidControlFlow        // break/continue/return outside a valid context.
	ErrNonConstant               // Non-foldable expression in a constant context.
)

// errKindLabels maps error kinds to their user-facing labels.
var errKindLabels = map[int]string{
	ErrSyntax:             "syntax error",
	ErrUndefinedName:      "undefined name",
	ErrRedeclaration:      "redeclaration",
	ErrTypeMismatch:       "type mismatch",
	ErrNotAssignable:      "not assignable",
	ErrInvalidControlFlow: "invalid control flow",
	ErrNonConstant:        "non-constant expression",
}

// CompileError is an error in the user's source text detected by the lexer,
// the parser, or one of the semantic passes.  The first compile error raised
// while analyzing a construct aborts analysis of that construct.
type CompileError struct {
	// The error kind.  Must be one of the enumerated error kinds.
	Kind int

	// The error message.
	Message string

	// The span over which the error occurs.  May be nil.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", errKindLabels[ce.Kind], ce.Message)
}

// Raise creates a new compile error of the given kind.  The caller is
// expected to panic with the result; Catch converts the panic back into an
// ordinary error return at a pass boundary.
func Raise(kind int, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// Catch recovers a compile error panicked from deeper in a pass and stores it
// into err.  Any other panic value is re-raised.
// NB: This function must ALWAYS be deferred.
func Catch(err **CompileError) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These errors specifically
// result from a bug in the compiler itself: lowering observing an invariant
// the checker was supposed to establish, an impossible AST shape, etc.  They
// are never user-facing diagnostics and always abort immediately.
func ReportICE(message string, args ...interface{}) {
	displayICE(fmt.Sprintf(message, args...))
	os.Exit(-1)
}

// ReportFatal reports a fatal but expected error: bad configuration, an
// unreadable input file, and the like.  All compilation stops immediately.
func ReportFatal(message string, args ...interface{}) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}
