package services

// Reconcile derives the next active selection from the previous selection
// and the processed-id sets before and after a registry mutation.
//
// Rules, in order:
//   - ids that are no longer processed are pruned
//   - ids that stayed processed keep their previous membership, so an
//     explicit deselection is never undone
//   - ids that became processed since the last reconciliation are added
//
// The result is ordered by the processed slice, which callers provide in
// registry insertion order. Reconcile is pure and idempotent: re-running it
// with prevProcessed equal to processed returns the selection unchanged.
func Reconcile(prev, prevProcessed, processed []string) []string {
	selected := make(map[string]bool, len(prev))
	for _, id := range prev {
		selected[id] = true
	}
	wasProcessed := make(map[string]bool, len(prevProcessed))
	for _, id := range prevProcessed {
		wasProcessed[id] = true
	}

	next := make([]string, 0, len(processed))
	for _, id := range processed {
		if selected[id] || !wasProcessed[id] {
			next = append(next, id)
		}
	}
	return next
}
