package search

import (
	"fmt"
	"testing"

	"adboard-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCategory_emptyRefMeansNoFilter(t *testing.T) {
	ids, err := ExpandCategory(testDB.DB, "")
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = ExpandCategory(testDB.DB, "   ")
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestExpandCategory_parentBySlugExpandsToChildren(t *testing.T) {
	ids, err := ExpandCategory(testDB.DB, "jobs")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{database.TestCategoryIT.ID, database.TestCategorySales.ID}, ids)
}

func TestExpandCategory_parentByNumericID(t *testing.T) {
	ids, err := ExpandCategory(testDB.DB, fmt.Sprintf("%d", database.TestCategoryJobs.ID))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{database.TestCategoryIT.ID, database.TestCategorySales.ID}, ids)
}

func TestExpandCategory_leafResolvesToItself(t *testing.T) {
	ids, err := ExpandCategory(testDB.DB, "venues")
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestCategoryVenues.ID}, ids)

	ids, err = ExpandCategory(testDB.DB, "it")
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestCategoryIT.ID}, ids)
}

func TestExpandCategory_unknownRefIsEmptyNotNil(t *testing.T) {
	ids, err := ExpandCategory(testDB.DB, "does-not-exist")
	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Len(t, ids, 0)

	ids, err = ExpandCategory(testDB.DB, "999999")
	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Len(t, ids, 0)
}
