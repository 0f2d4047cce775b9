package alert

import (
	"testing"
	"time"

	"adboard-backend/internal/database"
	"adboard-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueAlerts(t *testing.T) {
	now := time.Now()
	recent := now.Add(-time.Hour)
	staleDay := now.Add(-25 * time.Hour)
	staleWeek := now.Add(-8 * 24 * time.Hour)

	seeded := []model.JobAlert{
		{
			CustomerID:           database.TestCustomer2.ID,
			EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "instant always due", Frequency: model.FrequencyInstant},
			IsActive:             true,
			LastNotifiedAt:       &recent,
		},
		{
			CustomerID:           database.TestCustomer2.ID,
			EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "daily recently notified", Frequency: model.FrequencyDaily},
			IsActive:             true,
			LastNotifiedAt:       &recent,
		},
		{
			CustomerID:           database.TestCustomer2.ID,
			EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "daily stale", Frequency: model.FrequencyDaily},
			IsActive:             true,
			LastNotifiedAt:       &staleDay,
		},
		{
			CustomerID:           database.TestCustomer2.ID,
			EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "weekly recently notified", Frequency: model.FrequencyWeekly},
			IsActive:             true,
			LastNotifiedAt:       &staleDay,
		},
		{
			CustomerID:           database.TestCustomer2.ID,
			EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "weekly stale", Frequency: model.FrequencyWeekly},
			IsActive:             true,
			LastNotifiedAt:       &staleWeek,
		},
		{
			CustomerID:           database.TestCustomer2.ID,
			EditableJobAlertInfo: model.EditableJobAlertInfo{Name: "inactive instant", Frequency: model.FrequencyInstant},
			IsActive:             false,
			LastNotifiedAt:       &staleWeek,
		},
	}
	require.NoError(t, testDB.Create(&seeded).Error)
	defer func() {
		for i := range seeded {
			testDB.Delete(&seeded[i])
		}
	}()

	due, err := DueAlerts(testDB.DB, now)
	require.NoError(t, err)

	names := make([]string, 0, len(due))
	for _, a := range due {
		names = append(names, a.Name)
	}

	assert.Contains(t, names, "instant always due")
	assert.Contains(t, names, "daily stale")
	assert.Contains(t, names, "weekly stale")
	// never-notified alerts are due regardless of frequency
	assert.Contains(t, names, database.TestAlertFrontend.Name)

	assert.NotContains(t, names, "daily recently notified")
	assert.NotContains(t, names, "weekly recently notified")
	assert.NotContains(t, names, "inactive instant")
}
