package suggestion

import "time"

// Ops is the set of writes reconciliation decided on. Empty ops mean the
// stored suggestions already match the candidates.
type Ops struct {
	// Create holds candidates with no active counterpart.
	Create []Candidate
	// Update holds stored suggestions patched with changed candidate content.
	// CreatedAt is preserved; UpdatedAt is the reconciliation time.
	Update []Suggestion
	// DismissIDs holds ids of active suggestions whose policy produced no
	// candidate this run.
	DismissIDs []string
}

// Empty reports whether reconciliation decided on zero writes.
func (o Ops) Empty() bool {
	return len(o.Create) == 0 && len(o.Update) == 0 && len(o.DismissIDs) == 0
}

// Reconcile diffs active suggestions against this run's candidates.
// Re-running with unchanged inputs yields empty ops.
func Reconcile(active []Suggestion, candidates []Candidate, now time.Time) Ops {
	var ops Ops

	byPolicy := make(map[string]Suggestion, len(active))
	for _, s := range active {
		byPolicy[s.PolicyID] = s
	}

	matched := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		matched[c.PolicyID] = true
		existing, ok := byPolicy[c.PolicyID]
		if !ok {
			ops.Create = append(ops.Create, c)
			continue
		}
		if c.changedFrom(existing) {
			existing.Headline = c.Headline
			existing.Subtext = c.Subtext
			existing.Action = c.Action
			existing.Priority = c.Priority
			existing.UpdatedAt = now
			ops.Update = append(ops.Update, existing)
		}
	}

	for _, s := range active {
		if !matched[s.PolicyID] {
			ops.DismissIDs = append(ops.DismissIDs, s.ID)
		}
	}
	return ops
}
