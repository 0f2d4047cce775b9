package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "adboard-backend/internal/model"
	"adboard-backend/internal/utilities"
)

var testDBInstance *DBInstance
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seed fixtures shared by every DB-backed test suite.
var (
	TestAdminUser m.User
	TestCustomer1 m.User
	TestCustomer2 m.User

	// Plain password every seeded account logs in with
	TestSeedPassword = "SeedPass123!"

	TestLocationRiverton m.Location
	TestLocationHillview m.Location
	TestCurrencyUSD      m.Currency
	TestCurrencyEUR      m.Currency
	TestPackageSpotlight m.Package

	TestCategoryJobs   m.Category
	TestCategoryIT     m.Category
	TestCategorySales  m.Category
	TestCategoryVenues m.Category

	TestListingGoDev           m.Listing
	TestListingReactDev        m.Listing
	TestListingVueDev          m.Listing
	TestListingSalesRep        m.Listing
	TestListingVenue           m.Listing
	TestListingExpiredFeatured m.Listing
	TestListingPending         m.Listing
	TestListingInactive        m.Listing

	TestAlertFrontend m.JobAlert
)

// GetTestDB starts a PostgreSQL test container and returns a teardown
// function, the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBInstance, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts the marketplace fixtures if the database is empty.
func seedTestData(db *DBInstance) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return fmt.Errorf("test database is not empty, refusing to seed")
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	users := []m.User{
		{ID: uuid.New(), Username: "customer_anna", Email: ptr("anna@example.com"), Role: m.RoleCustomer, Password: hashedPwd},
		{ID: uuid.New(), Username: "customer_boris", Email: ptr("boris@example.com"), Role: m.RoleCustomer, Password: hashedPwd},
		{ID: uuid.New(), Username: "admin_user", Email: ptr("admin@example.com"), Role: m.RoleAdmin, Password: hashedPwd},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestCustomer1, TestCustomer2, TestAdminUser = users[0], users[1], users[2]

	locations := []m.Location{
		{Slug: "riverton", Name: "Riverton"},
		{Slug: "hillview", Name: "Hillview"},
	}
	if err := db.Create(&locations).Error; err != nil {
		return err
	}
	TestLocationRiverton, TestLocationHillview = locations[0], locations[1]

	currencies := []m.Currency{
		{Code: "USD", Symbol: "$"},
		{Code: "EUR", Symbol: "€"},
	}
	if err := db.Create(&currencies).Error; err != nil {
		return err
	}
	TestCurrencyUSD, TestCurrencyEUR = currencies[0], currencies[1]

	TestPackageSpotlight = m.Package{Name: "Spotlight", Price: 49.0, DurationDays: 30}
	if err := db.Create(&TestPackageSpotlight).Error; err != nil {
		return err
	}

	// Category tree: jobs is a parent with two children, venues is a leaf.
	TestCategoryJobs = m.Category{Slug: "jobs", Name: "Jobs"}
	if err := db.Create(&TestCategoryJobs).Error; err != nil {
		return err
	}
	children := []m.Category{
		{Slug: "it", Name: "IT & Engineering", ParentID: &TestCategoryJobs.ID},
		{Slug: "sales", Name: "Sales", ParentID: &TestCategoryJobs.ID},
	}
	if err := db.Create(&children).Error; err != nil {
		return err
	}
	TestCategoryIT, TestCategorySales = children[0], children[1]

	TestCategoryVenues = m.Category{Slug: "venues", Name: "Venues"}
	if err := db.Create(&TestCategoryVenues).Error; err != nil {
		return err
	}

	fullTime := "full-time"
	partTime := "part-time"
	contract := "contract"
	featuredUntil := time.Now().AddDate(0, 1, 0)
	featuredLapsed := time.Now().AddDate(0, 0, -1)

	listings := []m.Listing{
		{
			CustomerID: TestCustomer1.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Senior Go Developer",
				Description: "Design golang microservices and own the data layer.",
				CategoryID:  TestCategoryIT.ID,
				LocationID:  &TestLocationRiverton.ID,
				CurrencyID:  &TestCurrencyUSD.ID,
				JobType:     &fullTime,
				SalaryMin:   ptr(60000.0),
				SalaryMax:   ptr(90000.0),
			},
			Status:         m.StatusActive,
			ApprovalStatus: m.ApprovalApproved,
		},
		{
			CustomerID: TestCustomer2.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "React Frontend Engineer",
				Description: "Build interfaces with React and TypeScript.",
				CategoryID:  TestCategoryIT.ID,
				LocationID:  &TestLocationHillview.ID,
				CurrencyID:  &TestCurrencyUSD.ID,
				JobType:     &fullTime,
				SalaryMin:   ptr(50000.0),
				SalaryMax:   ptr(70000.0),
			},
			Status:         m.StatusActive,
			ApprovalStatus: m.ApprovalApproved,
		},
		{
			CustomerID: TestCustomer1.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Vue.js Developer",
				Description: "Single page applications built on Vue.",
				CategoryID:  TestCategoryIT.ID,
				LocationID:  &TestLocationHillview.ID,
				CurrencyID:  &TestCurrencyEUR.ID,
				JobType:     &contract,
				SalaryMin:   ptr(40000.0),
				SalaryMax:   ptr(60000.0),
			},
			Status:         m.StatusActive,
			ApprovalStatus: m.ApprovalApproved,
		},
		{
			CustomerID: TestCustomer2.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Field Sales Representative",
				Description: "Door to door sales across the region.",
				CategoryID:  TestCategorySales.ID,
				LocationID:  &TestLocationRiverton.ID,
				CurrencyID:  &TestCurrencyUSD.ID,
				JobType:     &partTime,
				SalaryMin:   ptr(20000.0),
				SalaryMax:   ptr(30000.0),
			},
			Status:         m.StatusActive,
			ApprovalStatus: m.ApprovalApproved,
		},
		{
			CustomerID: TestCustomer1.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Riverside Wedding Venue",
				Description: "Garden venue for up to 200 guests.",
				Price:       1200,
				CategoryID:  TestCategoryVenues.ID,
				LocationID:  &TestLocationHillview.ID,
				CurrencyID:  &TestCurrencyUSD.ID,
			},
			Status:            m.StatusActive,
			ApprovalStatus:    m.ApprovalApproved,
			PackageID:         &TestPackageSpotlight.ID,
			IsFeatured:        true,
			FeaturedExpiresAt: &featuredUntil,
		},
		{
			CustomerID: TestCustomer2.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Old Town Banquet Hall",
				Description: "Historic hall, catering included.",
				Price:       800,
				CategoryID:  TestCategoryVenues.ID,
				LocationID:  &TestLocationRiverton.ID,
				CurrencyID:  &TestCurrencyEUR.ID,
			},
			Status:            m.StatusActive,
			ApprovalStatus:    m.ApprovalApproved,
			IsFeatured:        true,
			FeaturedExpiresAt: &featuredLapsed,
		},
		{
			CustomerID: TestCustomer1.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Junior QA Engineer",
				Description: "Manual and automated testing.",
				CategoryID:  TestCategoryIT.ID,
				LocationID:  &TestLocationRiverton.ID,
				JobType:     &fullTime,
				SalaryMin:   ptr(25000.0),
				SalaryMax:   ptr(35000.0),
			},
			Status:         m.StatusActive,
			ApprovalStatus: m.ApprovalPending,
		},
		{
			CustomerID: TestCustomer2.ID,
			EditableListingInfo: m.EditableListingInfo{
				Title:       "Closed Kiosk Stand",
				Description: "No longer trading.",
				Price:       300,
				CategoryID:  TestCategorySales.ID,
				LocationID:  &TestLocationRiverton.ID,
			},
			Status:         m.StatusInactive,
			ApprovalStatus: m.ApprovalApproved,
		},
	}
	if err := db.Create(&listings).Error; err != nil {
		return err
	}
	TestListingGoDev = listings[0]
	TestListingReactDev = listings[1]
	TestListingVueDev = listings[2]
	TestListingSalesRep = listings[3]
	TestListingVenue = listings[4]
	TestListingExpiredFeatured = listings[5]
	TestListingPending = listings[6]
	TestListingInactive = listings[7]

	TestAlertFrontend = m.JobAlert{
		CustomerID: TestCustomer1.ID,
		EditableJobAlertInfo: m.EditableJobAlertInfo{
			Name:              "Frontend roles",
			Keywords:          pq.StringArray{"react", "vue"},
			Frequency:         m.FrequencyDaily,
			NotificationEmail: "anna@example.com",
		},
		IsActive: true,
	}
	if err := db.Create(&TestAlertFrontend).Error; err != nil {
		return err
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
