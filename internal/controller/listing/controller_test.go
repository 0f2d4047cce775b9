package listing

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"adboard-backend/internal/auth"
	"adboard-backend/internal/database"
	"adboard-backend/internal/middleware"
	"adboard-backend/internal/model"
	"adboard-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBInstance

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func testRouter() (*gin.Engine, *ListingController) {
	r := gin.Default()
	lc := NewListingController(testDB)
	r.GET("/listing", lc.SearchListings)
	r.GET("/listing/:id", lc.GetListingByID)
	r.GET("/my", middleware.RequireAuth(testDB), lc.GetMyListings)
	r.POST("/listing", middleware.RequireAuth(testDB), lc.CreateListing)
	r.PATCH("/listing/:id", middleware.RequireAuth(testDB), lc.EditListing)
	r.DELETE("/listing/:id", middleware.RequireAuth(testDB), lc.DeleteListing)
	r.PATCH("/listing/:id/approval", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin), lc.SetApprovalStatus)
	return r, lc
}

func TestSearchListings_keyword(t *testing.T) {
	r, _ := testRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/listing?keyword=react", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["total"])
	items := resp["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, database.TestListingReactDev.Title, items[0].(map[string]interface{})["title"])
}

func TestSearchListings_categoryAndSort(t *testing.T) {
	r, _ := testRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/listing?category=venues&sort=price&sort_type=asc", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), resp["total"])
	items := resp["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, database.TestListingExpiredFeatured.Title, items[0].(map[string]interface{})["title"])
	assert.Equal(t, database.TestListingVenue.Title, items[1].(map[string]interface{})["title"])
}

func TestSearchListings_unknownCategoryIsEmpty(t *testing.T) {
	r, _ := testRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/listing?category=nope", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), resp["total"])
	assert.Len(t, resp["items"].([]interface{}), 0)
	assert.Equal(t, float64(0), resp["last_page"])
}

func TestGetMyListings(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCustomer1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r, _ := testRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/my", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), resp["total"])
}

func TestGetListingByID(t *testing.T) {
	r, _ := testRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, fmt.Sprintf("/listing/%d", database.TestListingGoDev.ID), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestListingGoDev.Title, resp["title"])

	// unapproved listings are invisible on the public lookup
	rec, _ = testutil.MakeJSONRequest(nil, "", r, fmt.Sprintf("/listing/%d", database.TestListingPending.ID), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/listing/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListingLifecycle(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestCustomer1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestCustomer2.Username, database.TestSeedPassword)
	require.NoError(t, err)
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r, _ := testRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":       "Backend Engineer",
		"description": "Own the billing services.",
		"category_id": database.TestCategoryIT.ID,
		"job_type":    "full-time",
		"salary_min":  55000,
		"salary_max":  75000,
	}, ownerToken, r, "/listing", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.ApprovalPending, resp["approval_status"])
	assert.Equal(t, model.StatusActive, resp["status"])
	// price defaults to the salary floor when omitted
	assert.Equal(t, float64(55000), resp["price"])

	id := fmt.Sprintf("%.0f", resp["id"].(float64))

	rec, _ = testutil.MakeJSONRequest(gin.H{"title": "Backend Engineer (Go)"}, otherToken, r, "/listing/"+id, http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"title": "Backend Engineer (Go)"}, ownerToken, r, "/listing/"+id, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend Engineer (Go)", resp["title"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"approval_status": "approved"}, ownerToken, r, "/listing/"+id+"/approval", http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"approval_status": "approved"}, adminToken, r, "/listing/"+id+"/approval", http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ApprovalApproved, resp["approval_status"])

	rec, _ = testutil.MakeJSONRequest(nil, otherToken, r, "/listing/"+id, http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, ownerToken, r, "/listing/"+id, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateListing_validation(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCustomer1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r, _ := testRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title":       "Bad job type",
		"category_id": database.TestCategoryIT.ID,
		"job_type":    "gig",
	}, token, r, "/listing", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title":       "Inverted band",
		"category_id": database.TestCategoryIT.ID,
		"salary_min":  90000,
		"salary_max":  60000,
	}, token, r, "/listing", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title":   "Unknown field",
		"surpise": true,
	}, token, r, "/listing", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateListing_requiresAuth(t *testing.T) {
	r, _ := testRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "Anonymous"}, "", r, "/listing", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
