package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesuite/pkg/models"
)

func TestCriteriaDefaults(t *testing.T) {
	q, err := SearchCriteria{}.buildQuery()
	require.NoError(t, err)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, "updatedAt", q.SortField)
	assert.True(t, q.Descending)
}

func TestCriteriaClampsPaging(t *testing.T) {
	q, err := SearchCriteria{Page: -3, Size: 500}.buildQuery()
	require.NoError(t, err)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 100, q.Size)

	q, err = SearchCriteria{Size: -1}.buildQuery()
	require.NoError(t, err)
	assert.Equal(t, 1, q.Size)
}

func TestCriteriaSortDirection(t *testing.T) {
	q, err := SearchCriteria{SortDir: "asc"}.buildQuery()
	require.NoError(t, err)
	assert.False(t, q.Descending)

	q, err = SearchCriteria{SortDir: "ASC"}.buildQuery()
	require.NoError(t, err)
	assert.False(t, q.Descending)

	q, err = SearchCriteria{SortDir: "sideways"}.buildQuery()
	require.NoError(t, err)
	assert.True(t, q.Descending)
}

func TestCriteriaVisibility(t *testing.T) {
	q, err := SearchCriteria{Visibility: "shared"}.buildQuery()
	require.NoError(t, err)
	require.NotNil(t, q.Visibility)
	assert.Equal(t, models.VisibilityShared, *q.Visibility)

	_, err = SearchCriteria{Visibility: "glowing"}.buildQuery()
	assert.ErrorIs(t, err, ErrBadRequest)
}
