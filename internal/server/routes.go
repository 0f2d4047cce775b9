// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"adboard-backend/internal/auth"
	"adboard-backend/internal/controller/alert"
	"adboard-backend/internal/controller/category"
	"adboard-backend/internal/controller/listing"
	"adboard-backend/internal/middleware"
	"adboard-backend/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	listingCtrl := listing.NewListingController(s.DB)
	alertCtrl := alert.NewAlertController(s.DB)
	categoryCtrl := category.NewCategoryController(s.DB)

	r.Use(middleware.SafeHeader())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		// Public browse endpoints, rate limited since they hit the heaviest queries
		publicRoute := v1.Group("")
		{
			publicRoute.Use(middleware.EnvRateLimitMiddleware())
			publicRoute.GET("/listing", listingCtrl.SearchListings)
			publicRoute.GET("/listing/:id", listingCtrl.GetListingByID)
			publicRoute.GET("/category", categoryCtrl.GetCategories)
			publicRoute.GET("/category/:ref", categoryCtrl.GetCategory)
			publicRoute.GET("/category/:ref/children", categoryCtrl.GetCategoryChildren)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			listingRoute := needAuth.Group("/listing")
			{
				listingRoute.GET("/my", listingCtrl.GetMyListings)
				listingRoute.POST("", middleware.SizeLimit(1<<20), listingCtrl.CreateListing)
				listingRoute.PATCH("/:id", middleware.SizeLimit(1<<20), listingCtrl.EditListing)
				listingRoute.DELETE("/:id", listingCtrl.DeleteListing)
				listingRoute.PATCH("/:id/approval", middleware.CheckRole(model.RoleAdmin), listingCtrl.SetApprovalStatus)
			}

			alertRoute := needAuth.Group("/alert")
			{
				alertRoute.GET("", alertCtrl.GetAlerts)
				alertRoute.POST("", middleware.SizeLimit(1<<20), alertCtrl.CreateAlert)
				alertRoute.PATCH("/:id", middleware.SizeLimit(1<<20), alertCtrl.EditAlert)
				alertRoute.DELETE("/:id", alertCtrl.DeleteAlert)
				alertRoute.GET("/:id/matches", alertCtrl.GetAlertMatches)
				alertRoute.GET("/:id/matches/count", alertCtrl.CountAlertMatches)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
