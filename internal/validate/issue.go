// Package validate implements the architecture validation engine: graph
// consistency checks over the declared model plus bidirectional
// reconciliation between the declaration and the actual source tree.
//
// Every expected failure condition - a dangling reference, a cycle, a
// missing file or symbol - is recovered locally and returned as an Issue.
// Checks never abort early and never raise past the engine boundary.
package validate

// Kind classifies a validation finding.
type Kind string

const (
	// KindDanglingReference marks an id that resolves to no declared entity.
	KindDanglingReference Kind = "dangling_reference"
	// KindOrphanedEntity marks a goal no solution satisfies, a solution
	// satisfying no goals, or a solution no implementation realizes.
	KindOrphanedEntity Kind = "orphaned_entity"
	// KindCyclicDependency marks a closed loop in the requires graph.
	KindCyclicDependency Kind = "cyclic_dependency"
	// KindMissingFile marks a declared path absent from disk.
	KindMissingFile Kind = "missing_file"
	// KindUndeclaredFile marks an on-disk source file no implementation owns.
	KindUndeclaredFile Kind = "undeclared_file"
	// KindMissingSymbol marks a file lacking required symbol definitions.
	KindMissingSymbol Kind = "missing_symbol"
	// KindParseFailure marks a file that could not be parsed when symbol
	// checking was requested for it.
	KindParseFailure Kind = "parse_failure"
	// KindDuplicateID marks an entity id declared more than once.
	KindDuplicateID Kind = "duplicate_id"
)

// Issue is one validation finding. The Message is the human-readable form
// the orchestrator prints; Kind supports programmatic filtering.
type Issue struct {
	Kind    Kind
	Message string
}

func (i Issue) String() string { return i.Message }

// Messages flattens issues into the ordered error-string list the engine's
// callers consume.
func Messages(issues []Issue) []string {
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Message
	}
	return msgs
}
