package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEquipmentRefValidate(t *testing.T) {
	vesselID := uuid.New()
	raftID := uuid.New()
	cylinderID := uuid.New()

	tests := []struct {
		name        string
		ref         EquipmentRef
		expectError bool
	}{
		{"vessel only", VesselRef(vesselID), false},
		{"raft only", RaftRef(raftID), false},
		{"cylinder only", CylinderRef(cylinderID), false},
		{"none populated", EquipmentRef{}, true},
		{
			"two populated",
			EquipmentRef{VesselID: &vesselID, RaftID: &raftID},
			true,
		},
		{
			"all populated",
			EquipmentRef{VesselID: &vesselID, RaftID: &raftID, CylinderID: &cylinderID},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.expectError {
				assert.ErrorIs(t, err, ErrAmbiguousEquipmentRef)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEquipmentRefValidateOptional(t *testing.T) {
	assert.NoError(t, EquipmentRef{}.ValidateOptional())

	vesselID := uuid.New()
	raftID := uuid.New()
	assert.NoError(t, VesselRef(vesselID).ValidateOptional())
	assert.Error(t, EquipmentRef{VesselID: &vesselID, RaftID: &raftID}.ValidateOptional())
}
