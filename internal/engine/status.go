package engine

// Status tracks an item's progress through the per-item pipeline.
type Status string

const (
	StatusStart            Status = "start"
	StatusResolved         Status = "resolved"
	StatusNormalized       Status = "normalized"
	StatusDuplicateChecked Status = "duplicate_checked"
	StatusDecided          Status = "decided"
	StatusFinalized        Status = "finalized"
)

// validTransitions defines allowed state transitions.
// Every non-terminal state may also exit early to finalized (skip paths).
var validTransitions = map[Status][]Status{
	StatusStart:            {StatusResolved, StatusFinalized},
	StatusResolved:         {StatusNormalized, StatusFinalized},
	StatusNormalized:       {StatusDuplicateChecked, StatusFinalized},
	StatusDuplicateChecked: {StatusDecided, StatusFinalized},
	StatusDecided:          {StatusFinalized},
	StatusFinalized:        {}, // terminal
}

// CanTransitionTo returns true if transitioning from s to target is valid.
func (s Status) CanTransitionTo(target Status) bool {
	valid, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, v := range valid {
		if v == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if this status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusFinalized
}
