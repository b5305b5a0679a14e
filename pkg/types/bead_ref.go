package types

import "github.com/google/uuid"

// BeadRef points at a bead product and its slot on a customized bracelet.
type BeadRef struct {
	BeadID   uuid.UUID `json:"bead_id"`
	Position int       `json:"position"`
}

// BeadRefs is the ordered bead composition of a customized bracelet.
// Persisted as a JSON column via GORM's json serializer.
type BeadRefs []BeadRef

// RequiredBeadCount is the fixed size of a customized bracelet.
const RequiredBeadCount = 12
