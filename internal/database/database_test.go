package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	m "adboard-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var sharedDB *DBInstance

func TestMain(tm *testing.M) {
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, sharedDB, err = GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	tm.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func TestMigrationCreatesEveryTable(t *testing.T) {
	for _, mdl := range m.MigrateAble {
		assert.True(t, sharedDB.Migrator().HasTable(mdl), "%T", mdl)
	}
}

func TestHealth(t *testing.T) {
	stats := sharedDB.Health()
	assert.Equal(t, "up", stats["status"])
}

func TestSeedIsIdempotentGuard(t *testing.T) {
	// The seed refuses to run twice against the same database
	err := seedTestData(sharedDB)
	assert.Error(t, err)
}

func TestSeedFixturesPresent(t *testing.T) {
	var count int64
	require.NoError(t, sharedDB.Model(&m.Listing{}).Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(8))

	assert.NotEqual(t, "", TestCustomer1.ID.String())
	assert.NotZero(t, TestListingGoDev.ID)
	assert.NotZero(t, TestAlertFrontend.ID)
}
