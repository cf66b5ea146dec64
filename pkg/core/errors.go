package core

import (
	"errors"
	"fmt"
)

// ErrNoCommonScoreTypes reports that the loaded documents share no score
// type, so no cross-document comparison is possible. Recoverable: the
// caller renders an empty result instead of failing.
var ErrNoCommonScoreTypes = errors.New("core: no common score types across documents")

// MalformedDocumentError reports a document whose top-level value is not
// a JSON object. The document is skipped and the pipeline continues.
type MalformedDocumentError struct {
	Name   string
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("core: malformed document %q: %s", e.Name, e.Reason)
}
