package chorewatch

import "fmt"

// Chore is a single chore as served by the group backend.
type Chore struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	Completed  bool   `json:"completed"`
}

// GroceryItem is a single entry of the shared grocery list.
type GroceryItem struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity,omitempty"`
	Purchased bool   `json:"purchased"`
}

// Snapshot is a point-in-time view of a group. It is built fresh for every
// poll and never modified afterwards.
type Snapshot struct {
	GroupName string        `json:"group_name"`
	Chores    []Chore       `json:"chores"`
	Groceries []GroceryItem `json:"groceries"`
}

// ObservedState is the baseline recorded after the last poll for one
// device/group pair. Nil fields mean "never observed".
type ObservedState struct {
	LastChoreCount   *int    `json:"last_chore_count,omitempty"`
	LastGroceryCount *int    `json:"last_grocery_count,omitempty"`
	LastGroupName    *string `json:"last_group_name,omitempty"`
}

// Target identifies the device/group pair a cycle runs for.
type Target struct {
	GroupId  string `json:"group_id"`
	DeviceId string `json:"device_id"`
}

// Valid reports whether the device has joined a group.
func (t Target) Valid() bool {
	return t.GroupId != "" && t.DeviceId != ""
}

// Key is the storage/lock key of the pair. The device id is length-prefixed
// so ids containing ':' cannot collide with another pair.
func (t Target) Key() string {
	return fmt.Sprintf("%d:%s:%s", len(t.DeviceId), t.DeviceId, t.GroupId)
}

type EventKind string

const (
	EventNewChores    EventKind = "CHORES_ADDED"
	EventNewGroceries EventKind = "GROCERIES_ADDED"
	EventGroupRenamed EventKind = "GROUP_RENAMED"
)

// Event is one detected change. Count is set for the "new items" kinds,
// OldName/NewName for renames.
type Event struct {
	Kind    EventKind `json:"kind"`
	Count   int       `json:"count,omitempty"`
	OldName string    `json:"old_name,omitempty"`
	NewName string    `json:"new_name,omitempty"`
}

func NewChores(count int) Event {
	return Event{Kind: EventNewChores, Count: count}
}

func NewGroceries(count int) Event {
	return Event{Kind: EventNewGroceries, Count: count}
}

func GroupRenamed(oldName, newName string) Event {
	return Event{Kind: EventGroupRenamed, OldName: oldName, NewName: newName}
}

// Result is the only status a poll cycle reports to its scheduler.
type Result int

const (
	ResultSuccess Result = iota
	ResultRetry
)

func (r Result) String() string {
	if r == ResultRetry {
		return "retry"
	}
	return "success"
}

// Clone returns a copy that shares no pointers with s.
func (s ObservedState) Clone() ObservedState {
	var out ObservedState
	if s.LastChoreCount != nil {
		v := *s.LastChoreCount
		out.LastChoreCount = &v
	}
	if s.LastGroceryCount != nil {
		v := *s.LastGroceryCount
		out.LastGroceryCount = &v
	}
	if s.LastGroupName != nil {
		v := *s.LastGroupName
		out.LastGroupName = &v
	}
	return out
}
