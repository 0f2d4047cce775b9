package search

import (
	"context"
	"testing"

	"adboard-backend/internal/database"
	"adboard-backend/internal/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchAlert_keywordsMatchAny(t *testing.T) {
	m := NewMatcher(testDB.DB)

	matches, err := m.MatchAlert(context.Background(), &database.TestAlertFrontend, 50)
	require.NoError(t, err)

	// "react" or "vue" anywhere in title or description
	assert.ElementsMatch(t, []string{
		database.TestListingReactDev.Title,
		database.TestListingVueDev.Title,
	}, titles(matches))
}

func TestMatchAlert_noKeywordsMatchesWholePool(t *testing.T) {
	m := NewMatcher(testDB.DB)

	alert := &model.JobAlert{
		CustomerID:           database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "everything"},
	}

	matches, err := m.MatchAlert(context.Background(), alert, 50)
	require.NoError(t, err)
	assert.Len(t, matches, 6)
}

func TestMatchAlert_combinesStructuredFilters(t *testing.T) {
	m := NewMatcher(testDB.DB)

	alert := &model.JobAlert{
		CustomerID: database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{
			Name:       "full time in riverton",
			JobTypes:   pq.StringArray{"full-time"},
			LocationID: &database.TestLocationRiverton.ID,
		},
	}

	matches, err := m.MatchAlert(context.Background(), alert, 50)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, database.TestListingGoDev.Title, matches[0].Title)
}

func TestMatchAlert_salaryBandOverlap(t *testing.T) {
	m := NewMatcher(testDB.DB)

	alert := &model.JobAlert{
		CustomerID: database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{
			Name:      "well paid",
			SalaryMin: ptrF(65000),
			SalaryMax: ptrF(95000),
		},
	}

	matches, err := m.MatchAlert(context.Background(), alert, 50)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		database.TestListingGoDev.Title,
		database.TestListingReactDev.Title,
	}, titles(matches))
}

func TestMatchAlert_invertedSalaryBandDropsUpperBound(t *testing.T) {
	m := NewMatcher(testDB.DB)

	alert := &model.JobAlert{
		CustomerID: database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{
			Name:      "edited into nonsense",
			SalaryMin: ptrF(50000),
			SalaryMax: ptrF(10000),
		},
	}

	matches, err := m.MatchAlert(context.Background(), alert, 50)
	require.NoError(t, err)

	// Behaves as min-only: bands reaching 50k or above
	assert.ElementsMatch(t, []string{
		database.TestListingGoDev.Title,
		database.TestListingReactDev.Title,
		database.TestListingVueDev.Title,
	}, titles(matches))
}

func TestMatchAlert_limitClamped(t *testing.T) {
	m := NewMatcher(testDB.DB)

	alert := &model.JobAlert{
		CustomerID:           database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "everything"},
	}

	matches, err := m.MatchAlert(context.Background(), alert, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = m.MatchAlert(context.Background(), alert, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestCountMatches_countsBeyondAnyLimit(t *testing.T) {
	m := NewMatcher(testDB.DB)

	count, err := m.CountMatches(context.Background(), &database.TestAlertFrontend)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	alert := &model.JobAlert{
		CustomerID:           database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "everything"},
	}
	count, err = m.CountMatches(context.Background(), alert)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func TestMatchAlert_categoryFilterIsDirect(t *testing.T) {
	m := NewMatcher(testDB.DB)

	// A parent category on an alert does not expand to its children
	alert := &model.JobAlert{
		CustomerID: database.TestCustomer1.ID,
		EditableJobAlertInfo: model.EditableJobAlertInfo{
			Name:       "parent category",
			CategoryID: &database.TestCategoryJobs.ID,
		},
	}
	matches, err := m.MatchAlert(context.Background(), alert, 50)
	require.NoError(t, err)
	assert.Empty(t, matches)

	alert.CategoryID = &database.TestCategorySales.ID
	matches, err = m.MatchAlert(context.Background(), alert, 50)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, database.TestListingSalesRep.Title, matches[0].Title)
}

func ptrF(v float64) *float64 { return &v }
