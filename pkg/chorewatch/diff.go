package chorewatch

// Diff compares a fresh snapshot against the previous baseline and returns the
// events to raise together with the baseline to store next.
//
// A nil or empty previous state establishes the baseline silently. Counts only
// raise events when they grow; shrinking lists are absorbed into the new
// baseline without notice.
func Diff(prev *ObservedState, snap Snapshot) ([]Event, ObservedState) {
	choreCount := len(snap.Chores)
	groceryCount := len(snap.Groceries)
	groupName := snap.GroupName

	next := ObservedState{
		LastChoreCount:   &choreCount,
		LastGroceryCount: &groceryCount,
		LastGroupName:    &groupName,
	}

	if prev == nil {
		return nil, next
	}

	var evts []Event
	if prev.LastChoreCount != nil && choreCount > *prev.LastChoreCount {
		evts = append(evts, NewChores(choreCount-*prev.LastChoreCount))
	}
	if prev.LastGroceryCount != nil && groceryCount > *prev.LastGroceryCount {
		evts = append(evts, NewGroceries(groceryCount-*prev.LastGroceryCount))
	}
	if prev.LastGroupName != nil && *prev.LastGroupName != groupName {
		evts = append(evts, GroupRenamed(*prev.LastGroupName, groupName))
	}
	return evts, next
}
