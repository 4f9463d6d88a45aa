package notes

import "notesuite/pkg/models"

// RecomputeVisibility derives a note's visibility from how it is exposed.
// Any public link wins over shares; shares win over nothing.
func RecomputeVisibility(shareCount, linkCount int64) models.Visibility {
	switch {
	case linkCount > 0:
		return models.VisibilityPublic
	case shareCount > 0:
		return models.VisibilityShared
	default:
		return models.VisibilityPrivate
	}
}
