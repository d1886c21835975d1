package domain

// Removal records the outcome of removing an entity from one source group
// during a move. Failed removals carry the classified error.
type Removal struct {
	GroupID string
	OK      bool
	Err     error
}

// MoveReport is the structural result of a move: the add to the target group
// plus one entry per attempted removal. A partially failed move is reported
// here rather than rolled back; the add is never undone.
type MoveReport struct {
	Added   bool
	Removed []Removal
}

// AllRemoved reports whether every attempted removal succeeded.
func (r MoveReport) AllRemoved() bool {
	for _, rem := range r.Removed {
		if !rem.OK {
			return false
		}
	}
	return true
}
