package category

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"adboard-backend/internal/database"

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

func testRouter() *gin.Engine {
	r := gin.Default()
	cc := NewCategoryController(testDB)
	r.GET("/category", cc.GetCategories)
	r.GET("/category/:ref", cc.GetCategory)
	r.GET("/category/:ref/children", cc.GetCategoryChildren)
	return r
}

func getJSON(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetCategories_topLevelWithChildren(t *testing.T) {
	r := testRouter()

	rec := getJSON(r, "/category")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"slug":"jobs"`)
	assert.Contains(t, body, `"slug":"venues"`)
	assert.Contains(t, body, `"slug":"it"`)
	assert.Contains(t, body, `"slug":"sales"`)
}

func TestGetCategory_bySlugAndID(t *testing.T) {
	r := testRouter()

	rec := getJSON(r, "/category/jobs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"it"`)

	rec = getJSON(r, fmt.Sprintf("/category/%d", database.TestCategoryVenues.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"venues"`)
}

func TestGetCategoryChildren(t *testing.T) {
	r := testRouter()

	rec := getJSON(r, "/category/jobs/children")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"it"`)
	assert.Contains(t, rec.Body.String(), `"slug":"sales"`)

	// a leaf has no children, not an error
	rec = getJSON(r, "/category/venues/children")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = getJSON(r, "/category/ghost/children")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCategory_unknown(t *testing.T) {
	r := testRouter()

	rec := getJSON(r, "/category/ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = getJSON(r, "/category/999999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
