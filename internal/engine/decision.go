package engine

// Decision is the terminal outcome of processing one item.
type Decision string

const (
	DecisionUpload           Decision = "uploaded"
	DecisionSkipDuplicate    Decision = "skip-duplicate"
	DecisionSkipBlockedGroup Decision = "skip-blocked-group"
	DecisionSkipCancelled    Decision = "skip-cancelled"
	DecisionSkipNoSubtitle   Decision = "skip-no-subtitle"

	// DecisionSearchFailed marks a transient catalog failure. It is never
	// finalized, so the item is retried on the next run.
	DecisionSearchFailed Decision = "search-failed"
)

// Finalizes reports whether this decision is stable and re-derivable,
// and therefore written to the ledger.
func (d Decision) Finalizes() bool {
	return d != DecisionSearchFailed
}

// Outcome folds the decision into the two-valued ledger outcome tag.
func (d Decision) Outcome() string {
	if d == DecisionUpload {
		return "uploaded"
	}
	return "skipped"
}
