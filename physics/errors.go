package physics

import "fmt"

// Kind categorizes the errors physics returns at its world-facing
// boundaries (constructors and setters). Degeneracies found deeper in the
// pipeline (GJK/EPA/CCD not converging) are never surfaced as errors — they
// are recovered locally per spec, and the affected pair is treated as
// separated for that step.
type Kind int

const (
	// InvalidArgument covers negative mass/inertia, non-positive density,
	// negative friction/restitution, nil shapes, degenerate polygons, and
	// out-of-range iteration counts.
	InvalidArgument Kind = iota
	// NotFound covers removal of a body/fixture/joint that isn't present.
	NotFound
	// InvariantViolated covers a broken broad-phase tree invariant. Only
	// reachable through misuse that bypasses the public API. It is
	// returned by the tree's internal consistency check; World.Step does
	// not run that check and does not abort on a broken tree.
	InvariantViolated
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case NotFound:
		return "not found"
	case InvariantViolated:
		return "invariant violated"
	default:
		return "unknown"
	}
}

// Error is the error type returned from physics' world-facing boundaries.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("physics: %s: %s", e.Kind, e.Msg) }

// Is allows errors.Is(err, physics.ErrInvalidArgument) style checks against
// a Kind by comparing it to a bare Error carrying only that Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// errKind constructs a sentinel Error of the given kind for use with
// errors.Is; the exported sentinels below (e.g. ErrNotFound) are built
// with it.
func errKind(kind Kind) *Error { return &Error{Kind: kind} }

// ErrInvalidArgument is a sentinel usable with errors.Is.
var ErrInvalidArgument = errKind(InvalidArgument)

// ErrNotFound is a sentinel usable with errors.Is.
var ErrNotFound = errKind(NotFound)

// ErrInvariantViolated is a sentinel usable with errors.Is.
var ErrInvariantViolated = errKind(InvariantViolated)
