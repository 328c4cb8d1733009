package snapshot

import "hoststatus/internal/status"

// StatusStore keeps the most recent scheduled snapshot.
type StatusStore struct {
	Store[status.Snapshot]
}

func NewStatusStore() *StatusStore {
	return &StatusStore{}
}
