package wave

import "github.com/sblanco/sigwave/pkg"

var (
	// ErrStructural indicates a group or child node missing a required
	// field, or whose shape matches no known entity kind.
	ErrStructural = pkg.NewError("invalid structure")

	// ErrConstraint indicates a recognized entity carrying attributes it
	// does not admit, or an attribute value outside its allowed set.
	ErrConstraint = pkg.NewError("constraint violation")

	// ErrIterator indicates an iterator bound that is not a non-negative
	// integer.
	ErrIterator = pkg.NewError("invalid iterator")

	// ErrExprCompile indicates an expression that failed to compile.
	ErrExprCompile = pkg.NewError("expression compile failed")

	// ErrExprEval indicates an expression that failed to evaluate.
	ErrExprEval = pkg.NewError("expression evaluation failed")

	// ErrEnvCycle indicates that env self-expansion did not reach a fixed
	// point, which means the variables reference each other in a cycle.
	ErrEnvCycle = pkg.NewError("env expansion did not converge")
)
