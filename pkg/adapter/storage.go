package adapter

// Storage is a single named byte slot the activity log persists into.
// Implementations must treat Read of an absent slot as (nil, nil) rather
// than an error so a fresh store starts from an empty collection.
type Storage interface {
	// Read returns the current slot content, or nil if the slot is absent
	Read() ([]byte, error)
	// Write replaces the slot content
	Write(data []byte) error
	// Remove deletes the slot; removing an absent slot is not an error
	Remove() error
}
