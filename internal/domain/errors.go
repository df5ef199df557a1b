package domain

import (
	"errors"
	"fmt"
)

// ErrSkip marks a subject that is excluded from conversion by design, such
// as the owl:Ontology document header. It is not a failure.
var ErrSkip = errors.New("subject excluded from conversion")

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	// KindMappingGap: an RDF type or predicate has no rule. Recoverable;
	// the node or claim is skipped with a warning and the run continues.
	KindMappingGap ErrorKind = "mapping_gap"

	// KindAuth: the target store rejected the credentials. Fatal before any
	// creation happens.
	KindAuth ErrorKind = "auth"

	// KindRemote: the target store API failed during a create/claim call.
	// Fatal for the current run; reruns resume from the correspondence
	// store without duplicating prior work.
	KindRemote ErrorKind = "remote"

	// KindConsistency: a claim would reference a URI with no correspondence
	// record at submission time. A programming-level assertion, not a data
	// problem.
	KindConsistency ErrorKind = "consistency"

	// KindInvalidInput: the ontology document or rule table data is broken.
	KindInvalidInput ErrorKind = "invalid_input"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant URI, file path, or entity ID
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
