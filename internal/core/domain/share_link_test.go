package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

func TestPermissionLevel_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		held     domain.PermissionLevel
		required domain.PermissionLevel
		want     bool
	}{
		{name: "read satisfies read", held: domain.PermissionRead, required: domain.PermissionRead, want: true},
		{name: "write satisfies read", held: domain.PermissionWrite, required: domain.PermissionRead, want: true},
		{name: "write satisfies write", held: domain.PermissionWrite, required: domain.PermissionWrite, want: true},
		{name: "read does not satisfy write", held: domain.PermissionRead, required: domain.PermissionWrite, want: false},
		{name: "unknown level satisfies nothing", held: "admin", required: domain.PermissionRead, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.held.Satisfies(tt.required))
		})
	}
}

func TestCategory_VisibleTo(t *testing.T) {
	owner := "user-1"

	preset := domain.Category{CategoryID: "c1", OwnerUserID: nil}
	private := domain.Category{CategoryID: "c2", OwnerUserID: &owner}

	assert.True(t, preset.VisibleTo("anyone"))
	assert.True(t, private.VisibleTo(owner))
	assert.False(t, private.VisibleTo("user-2"))
}
