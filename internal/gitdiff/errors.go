package gitdiff

import "fmt"

// HistoryUnavailableError indicates the repository's commit history is too
// shallow to diff the revision against its parent. Activation decisions
// cannot be trusted without a complete changed-path set, so callers must
// treat this as fatal and fetch full history before retrying.
type HistoryUnavailableError struct {
	Revision string
	Err      error
}

func (e *HistoryUnavailableError) Error() string {
	return fmt.Sprintf("history unavailable for %s (fetch full history before publishing): %v", e.Revision, e.Err)
}
func (e *HistoryUnavailableError) Unwrap() error { return e.Err }

// RevisionError indicates the revision could not be resolved to a commit.
type RevisionError struct {
	Revision string
	Err      error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("cannot resolve revision %s: %v", e.Revision, e.Err)
}
func (e *RevisionError) Unwrap() error { return e.Err }
