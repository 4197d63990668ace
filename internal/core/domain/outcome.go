package domain

// OutcomeKind distinguishes full success from degraded and failed results.
type OutcomeKind string

// Outcome kinds.
const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeDegraded OutcomeKind = "degraded"
	OutcomeFailed   OutcomeKind = "failed"
)

// Outcome records whether an operation got everything it wanted.
// Degraded results are still usable; Reason says what was lost.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

// Success returns a successful outcome.
func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

// Degraded returns a degraded outcome with the given reason.
func Degraded(reason string) Outcome {
	return Outcome{Kind: OutcomeDegraded, Reason: reason}
}

// Failed returns a failed outcome with the given reason.
func Failed(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// OK returns true for successful outcomes.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// String renders the outcome for display.
func (o Outcome) String() string {
	if o.Kind == "" {
		return string(OutcomeSuccess)
	}
	if o.Reason == "" {
		return string(o.Kind)
	}
	return string(o.Kind) + ": " + o.Reason
}
