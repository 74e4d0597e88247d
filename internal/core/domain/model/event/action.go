package event

// Action is the decision taken for an admitted delay event.
type Action string

const (
	// ActionMaintainAssignment keeps the current driver (risk at or below the threshold).
	ActionMaintainAssignment Action = "MAINTAIN_ASSIGNMENT"

	// ActionReassignmentInitiated means a new driver took over the order.
	ActionReassignmentInitiated Action = "REASSIGNMENT_INITIATED"

	// ActionReassignmentFailed covers both the exhausted ceiling and the
	// no-driver case; Outcome tells them apart.
	ActionReassignmentFailed Action = "REASSIGNMENT_FAILED"

	// ActionOrderAlreadyCancelled is recorded when the event targets a
	// cancelled order. Nothing is scored or mutated.
	ActionOrderAlreadyCancelled Action = "ORDER_ALREADY_CANCELLED"
)

func (a Action) String() string {
	return string(a)
}

// ReassignmentOutcome is the result of a reassignment attempt.
type ReassignmentOutcome string

const (
	OutcomeNone              ReassignmentOutcome = ""
	OutcomeReassigned        ReassignmentOutcome = "REASSIGNED"
	OutcomeExhausted         ReassignmentOutcome = "EXHAUSTED"
	OutcomeNoDriverAvailable ReassignmentOutcome = "NO_DRIVER_AVAILABLE"
)

// Action maps a reassignment outcome onto the recorded action.
func (o ReassignmentOutcome) Action() Action {
	switch o {
	case OutcomeReassigned:
		return ActionReassignmentInitiated
	case OutcomeExhausted, OutcomeNoDriverAvailable:
		return ActionReassignmentFailed
	default:
		return ActionMaintainAssignment
	}
}

func (o ReassignmentOutcome) String() string {
	return string(o)
}

// RiskSource tells where a risk score came from.
type RiskSource string

const (
	RiskSourceRemote   RiskSource = "remote"
	RiskSourceFallback RiskSource = "fallback"
	RiskSourceSkipped  RiskSource = "skipped"
)

func (s RiskSource) String() string {
	return string(s)
}
