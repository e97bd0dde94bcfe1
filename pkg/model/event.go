package model

type EventKind string

const (
	// EventAppended is emitted once per successful append, carrying the new record
	EventAppended EventKind = "activity-appended"
	// EventCleared is emitted after the collection has been emptied
	EventCleared EventKind = "activities-cleared"
	// EventImported is emitted after an import replaced the collection
	EventImported EventKind = "activities-imported"
)

// Event is a change notification emitted by the store after a mutation has
// been durably applied. Activity is set only for EventAppended; subscribers
// must re-query the store for full state rather than trusting the payload
// as a snapshot.
type Event struct {
	Kind     EventKind
	Activity *Activity
}
