package grammar

import "fmt"

// ParseFailure is returned when a parse's root node ends in the FAILED
// state. It carries both the root and the deepest frontier node reached
// (Frontier), so callers such as editors can highlight the offending
// span.
type ParseFailure struct {
	Root     *ParsedNode
	Frontier *ParsedNode
}

// Error implements the error interface.
func (e *ParseFailure) Error() string {
	if e.Frontier != nil {
		return fmt.Sprintf("parse failed at %q (byte %d)", e.Frontier.Name(), e.Frontier.Matcher.Pos)
	}
	return "parse failed"
}

// FirstAutocompletingAncestorThatFailed returns the autocompleting node
// closest to Root on the path down to Frontier, using the same priority
// rule as completion collection: its matcher's pos and parsed length
// delimit the span an editor should highlight.
func (e *ParseFailure) FirstAutocompletingAncestorThatFailed() *ParsedNode {
	if e.Frontier == nil {
		return nil
	}
	return firstAutocompletingAncestor(e.Frontier)
}

// EvaluationError wraps a panic raised by a user-supplied evaluator;
// ordinary errors returned by evaluators are propagated unchanged.
type EvaluationError struct {
	Node *ParsedNode
	Err  error
}

func (e *EvaluationError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("evaluating %q: %v", e.Node.Name(), e.Err)
	}
	return fmt.Sprintf("evaluation failed: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// AutocompleterError wraps a panic raised while computing completions,
// e.g. by a user-supplied autocompleter. The completions gathered before
// the failure are still handed to the caller.
type AutocompleterError struct {
	Node *ParsedNode
	Err  error
}

func (e *AutocompleterError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("autocompleting %q: %v", e.Node.Name(), e.Err)
	}
	return fmt.Sprintf("autocompletion failed: %v", e.Err)
}

func (e *AutocompleterError) Unwrap() error { return e.Err }
