package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/planhive/planhive-api/internal/auth"
	"github.com/planhive/planhive-api/internal/database"
	"github.com/planhive/planhive-api/internal/middleware"
	"github.com/planhive/planhive-api/internal/models"
	"github.com/planhive/planhive-api/internal/repository"
	"github.com/planhive/planhive-api/internal/services"
)

const testJWTSecret = "test-secret"
const testBaseURL = "http://localhost:7788"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	jwt    *auth.JWTManager
}

// newTestEnv builds an in-memory database and a router with the full
// route table, one isolated database per test.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Participant{},
		&models.Task{},
	))
	database.SetDB(db)

	jwtManager := auth.NewJWTManager(testJWTSecret, time.Hour)

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, jwtManager)
	planService := services.NewPlanService(planRepo, participantRepo)
	inviteService := services.NewInviteService(participantRepo, userRepo, testBaseURL)
	taskService := services.NewTaskService(taskRepo, planRepo, participantRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService, inviteService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/profile", middleware.RequireAuth(jwtManager), authHandler.GetProfile)
	authRoutes.PUT("/update-profile", middleware.RequireAuth(jwtManager), authHandler.UpdateProfile)
	authRoutes.DELETE("/delete-account", middleware.RequireAuth(jwtManager), authHandler.DeleteAccount)

	plans := api.Group("/plan")
	plans.GET("/invite/:inviteToken", planHandler.RespondToInvite)
	plans.POST("/create-plan", middleware.RequireAuth(jwtManager), planHandler.CreatePlan)
	plans.POST("/:planId/invite", middleware.RequireAuth(jwtManager), middleware.RequirePlanOrganizer(), planHandler.InviteFriend)
	plans.GET("/invitations", middleware.RequireAuth(jwtManager), planHandler.ListInvitations)
	plans.DELETE("/:planId/cancel", middleware.RequireAuth(jwtManager), planHandler.CancelPlan)
	plans.GET("/events", middleware.RequireAuth(jwtManager), planHandler.ListPlans)
	plans.GET("/events/user", middleware.RequireAuth(jwtManager), planHandler.ListUserPlans)
	plans.GET("/events/:planId", middleware.RequireAuth(jwtManager), planHandler.GetPlan)
	plans.PUT("/events/update/:planId", middleware.RequireAuth(jwtManager), planHandler.UpdatePlan)
	plans.GET("/plans/:planId/expenses", middleware.RequireAuth(jwtManager), planHandler.GetPlanExpenses)

	tasks := api.Group("/resp")
	tasks.Use(middleware.RequireAuth(jwtManager))
	tasks.POST("/:planId/assign", middleware.RequirePlanOrganizer(), taskHandler.AssignTask)
	tasks.POST("/:planId/tasks/bulk", taskHandler.CreateTaskList)
	tasks.POST("/:planId/pick", taskHandler.PickTask)
	tasks.POST("/complete/:taskId", taskHandler.CompleteTask)
	tasks.GET("/assigned/me", taskHandler.ListMyTasks)
	tasks.GET("/:planId", taskHandler.ListPlanTasks)

	return &testEnv{db: db, router: r, jwt: jwtManager}
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer credential.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerUser creates a user through the API and returns the user with a
// valid login token.
func (e *testEnv) registerUser(t *testing.T, name, email string) (*models.User, string) {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"surname":  "Tester",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, e.db.Where("email = ?", email).First(&user).Error)

	w = e.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)

	return &user, token
}

// createPlan creates a plan through the API and returns its ID.
func (e *testEnv) createPlan(t *testing.T, token, name string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/plan/create-plan", token, gin.H{
		"name":          name,
		"description":   "A get-together",
		"totalexpenses": 300.0,
		"date":          time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"location":      "Lakeside",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var plan models.Plan
	require.NoError(t, e.db.Where("name = ?", name).First(&plan).Error)
	return plan.ID
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
