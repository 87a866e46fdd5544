package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		name   string
		status RegistrationStatus
		valid  bool
	}{
		{"pending", StatusPending, true},
		{"approved", StatusApproved, true},
		{"rejected", StatusRejected, true},
		{"empty", RegistrationStatus(""), false},
		{"unknown", RegistrationStatus("cancelled"), false},
		{"case sensitive", RegistrationStatus("Approved"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidStatus(tt.status))
		})
	}
}

func TestValidGender(t *testing.T) {
	tests := []struct {
		name   string
		gender string
		valid  bool
	}{
		{"empty is allowed", "", true},
		{"male", GenderMale, true},
		{"female", GenderFemale, true},
		{"other", GenderOther, true},
		{"unknown value", "unspecified", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidGender(tt.gender))
		})
	}
}
