package models

// Owned is implemented by entities whose mutation is restricted to a single
// owning user. The ownership check always runs after the existence lookup so
// callers can tell "not found" apart from "forbidden".
type Owned interface {
	OwnerID() string
}
