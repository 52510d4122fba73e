package pragmatic

import "errors"

var (
	// ErrConfiguration is returned when a term is declared while a
	// registry strategy other than the default one is bound.
	ErrConfiguration = errors.New("cannot declare terms after an incompatible strategy was already bound")

	// ErrPrecondition is returned when a model does not fulfil the
	// collaborator contract, such as a nil model, a model without a schema
	// or a failing projection.
	ErrPrecondition = errors.New("model precondition failed")

	// ErrNestingTooDeep is returned when compaction recursed into nested
	// models beyond the configured maximum depth. This usually indicates a
	// cycle in the object graph.
	ErrNestingTooDeep = errors.New("nesting too deep")
)
