package credential

import "fmt"

// PartialIssueError reports a batch that stopped at the first store failure.
// Persisted holds the identifiers already written; Failed is the email of the
// record that could not be stored.
type PartialIssueError struct {
	Persisted []string
	Failed    string
	Err       error
}

func (e *PartialIssueError) Error() string {
	return fmt.Sprintf("credential issuance stopped at %s after %d persisted: %v", e.Failed, len(e.Persisted), e.Err)
}

func (e *PartialIssueError) Unwrap() error { return e.Err }
