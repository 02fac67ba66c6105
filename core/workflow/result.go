package workflow

import (
	"fmt"
	"strings"
)

// Outcome tags a mutation result.
type Outcome int

const (
	Success Outcome = iota + 1
	Partial
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Partial:
		return "partial"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Result is the summary of one workflow run.
type Result struct {
	Outcome   Outcome
	Succeeded int
	Failed    []string
	// Err is the last mutation error, if any.
	Err error
	// RefreshErr is set when the reconciling fetch failed; it does not change Outcome.
	RefreshErr error
}

func (r Result) OK() bool { return r.Outcome == Success }

func newResult(succeeded int, failed []string, err error) Result {
	res := Result{Succeeded: succeeded, Failed: failed, Err: err}
	switch {
	case len(failed) == 0 && err == nil:
		res.Outcome = Success
	case succeeded > 0:
		res.Outcome = Partial
	default:
		res.Outcome = Failure
	}
	return res
}

// Messages picks the summary line for each outcome.
type Messages struct {
	Success string
	// Partial receives the success count and the failed names joined by ", ".
	Partial string
	Failure string
}

// Message formats the single summary notification of r.
func (r Result) Message(msgs Messages) string {
	switch r.Outcome {
	case Success:
		return msgs.Success
	case Partial:
		return fmt.Sprintf(msgs.Partial, r.Succeeded, strings.Join(r.Failed, ", "))
	default:
		return msgs.Failure
	}
}
