package model

import "github.com/google/uuid"

// Owned is implemented by every record that belongs exclusively to one user.
type Owned interface {
	OwnerID() uuid.UUID
	SetOwner(id uuid.UUID)
}

// Resource is implemented by ledger records exposed through the generic
// admin/self CRUD surface. Present fills derived response fields such as
// the human-readable status label.
type Resource interface {
	Owned
	RecordID() uuid.UUID
	Present()
}
