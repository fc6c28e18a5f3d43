package models

import (
	"errors"

	"github.com/google/uuid"
)

var ErrAmbiguousEquipmentRef = errors.New(
	"equipment reference must target exactly one of vessel, raft, or cylinder",
)

// EquipmentRef attaches a record to exactly one piece of tracked equipment.
// The database carries three nullable foreign keys; the exactly-one invariant
// is enforced here at the boundary, not by a constraint.
type EquipmentRef struct {
	VesselID   *uuid.UUID `gorm:"type:uuid;index" json:"vesselId,omitempty"`
	RaftID     *uuid.UUID `gorm:"type:uuid;index" json:"raftId,omitempty"`
	CylinderID *uuid.UUID `gorm:"type:uuid;index" json:"cylinderId,omitempty"`
}

func VesselRef(id uuid.UUID) EquipmentRef   { return EquipmentRef{VesselID: &id} }
func RaftRef(id uuid.UUID) EquipmentRef     { return EquipmentRef{RaftID: &id} }
func CylinderRef(id uuid.UUID) EquipmentRef { return EquipmentRef{CylinderID: &id} }

// Validate enforces the exactly-one-populated invariant.
func (r EquipmentRef) Validate() error {
	count := 0
	if r.VesselID != nil {
		count++
	}
	if r.RaftID != nil {
		count++
	}
	if r.CylinderID != nil {
		count++
	}

	if count != 1 {
		return ErrAmbiguousEquipmentRef
	}
	return nil
}

// ValidateOptional allows an empty reference but rejects ambiguous ones.
// Used for alerts, where stock alerts carry no equipment at all.
func (r EquipmentRef) ValidateOptional() error {
	if r.IsZero() {
		return nil
	}
	return r.Validate()
}

// IsZero reports whether no equipment is referenced at all.
func (r EquipmentRef) IsZero() bool {
	return r.VesselID == nil && r.RaftID == nil && r.CylinderID == nil
}
