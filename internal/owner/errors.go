package owner

import (
	"errors"
	"fmt"
)

// Kind is the classified error taxonomy. Transport and cancellation failures
// are ordinary errors outside this set.
type Kind string

const (
	// KindSubgraphIndexing means the indexed store disagrees with chain truth
	// in a way explained by indexing lag (a state-transitioning event the
	// index has not caught up with). Data carries the trustworthy on-chain
	// value; callers may retry later or use Data directly.
	KindSubgraphIndexing Kind = "SubgraphIndexingError"

	// KindUnknown means the disagreement is not explainable by lag. Signals a
	// genuine inconsistency needing investigation.
	KindUnknown Kind = "UnknownError"
)

// ClassifiedError is raised when reconciliation cannot produce a trustworthy
// single answer. It always carries the best-known on-chain value (Data, may be
// nil for an unregistered name) and the reference timestamp the resolution
// used for expiry judgments.
type ClassifiedError struct {
	Kind      Kind
	Message   string
	Data      Owner
	Timestamp uint64
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s (at block time %d)", e.Kind, e.Message, e.Timestamp)
}

// NewIndexingError classifies an index-lag disagreement.
func NewIndexingError(msg string, data Owner, timestamp uint64) *ClassifiedError {
	return &ClassifiedError{Kind: KindSubgraphIndexing, Message: msg, Data: data, Timestamp: timestamp}
}

// NewUnknownError classifies a disagreement not explainable by lag.
func NewUnknownError(msg string, data Owner, timestamp uint64) *ClassifiedError {
	return &ClassifiedError{Kind: KindUnknown, Message: msg, Data: data, Timestamp: timestamp}
}

// NewClassified builds an error of an arbitrary kind; used by the debug error
// injector which selects the kind by name.
func NewClassified(kind Kind, msg string, data Owner, timestamp uint64) *ClassifiedError {
	return &ClassifiedError{Kind: kind, Message: msg, Data: data, Timestamp: timestamp}
}

// AsClassified unwraps err into a ClassifiedError if it is one.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsIndexingLag reports whether err is a classified indexing-lag error, the
// retry-later case.
func IsIndexingLag(err error) bool {
	ce, ok := AsClassified(err)
	return ok && ce.Kind == KindSubgraphIndexing
}
