package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notesuite/pkg/models"
)

func TestRecomputeVisibility(t *testing.T) {
	tests := []struct {
		name   string
		shares int64
		links  int64
		want   models.Visibility
	}{
		{"no exposure", 0, 0, models.VisibilityPrivate},
		{"shares only", 2, 0, models.VisibilityShared},
		{"links only", 0, 1, models.VisibilityPublic},
		{"links win over shares", 3, 1, models.VisibilityPublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecomputeVisibility(tt.shares, tt.links))
		})
	}
}
