package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/middleware"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/notify"
	"github.com/hanamura/taskdesk/internal/repository"
	"github.com/hanamura/taskdesk/internal/services"
	"github.com/hanamura/taskdesk/internal/tracker"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthHandlerTestSuite drives the full session flow through the router.
type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Category{},
		&models.Priority{},
		&models.Preference{},
		&models.UserActivity{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	prefRepo := repository.NewPreferenceRepository(suite.db)
	activityRepo := repository.NewActivityRepository(suite.db)

	authService := services.NewAuthService(userRepo, activityRepo, nil)

	trackers := tracker.NewManager(func(userID uint64) *tracker.Tracker {
		return tracker.New(taskRepo, prefRepo, notify.NewDesktopNotifier(),
			userID, time.Hour, 24*time.Hour, 5*time.Second)
	})
	handler := NewAuthHandler(authService, trackers)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	suite.router.Use(sessions.Sessions(constants.SessionName, store))

	suite.router.POST("/auth/signup", handler.Signup)
	suite.router.POST("/auth/login", handler.Login)
	suite.router.POST("/auth/logout", handler.Logout)
	suite.router.GET("/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthHandlerTestSuite) request(method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) signup(username, password string) *httptest.ResponseRecorder {
	return suite.request(http.MethodPost, "/auth/signup", gin.H{
		"username": username,
		"password": password,
		"email":    username + "@example.com",
	}, nil)
}

func (suite *AuthHandlerTestSuite) TestSignup() {
	w := suite.signup("alice", "Sup3rSecret!")
	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"username":"alice"`)
	// The password never leaves the server.
	suite.NotContains(w.Body.String(), "Sup3rSecret!")
}

func (suite *AuthHandlerTestSuite) TestSignupDuplicateUsername() {
	suite.Require().Equal(http.StatusCreated, suite.signup("alice", "Sup3rSecret!").Code)

	w := suite.signup("alice", "An0therSecret!")
	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "CONSTRAINT_VIOLATION")
}

func (suite *AuthHandlerTestSuite) TestSignupWeakPassword() {
	w := suite.signup("alice", "weak")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "VALIDATION_ERROR")
}

func (suite *AuthHandlerTestSuite) TestLoginWrongPassword() {
	suite.Require().Equal(http.StatusCreated, suite.signup("alice", "Sup3rSecret!").Code)

	w := suite.request(http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "WrongSecret1!",
	}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestSessionLifecycle() {
	suite.Require().Equal(http.StatusCreated, suite.signup("alice", "Sup3rSecret!").Code)

	// Without a session the profile is off limits.
	w := suite.request(http.MethodGet, "/auth/me", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Login opens a session.
	w = suite.request(http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "Sup3rSecret!",
	}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	w = suite.request(http.MethodGet, "/auth/me", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"username":"alice"`)

	// Logout clears the session.
	w = suite.request(http.MethodPost, "/auth/logout", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	cleared := w.Result().Cookies()

	w = suite.request(http.MethodGet, "/auth/me", nil, cleared)
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Login success and logout were both recorded.
	var count int64
	suite.db.Model(&models.UserActivity{}).
		Where("activity_type = ?", constants.ActivityLogout).
		Count(&count)
	suite.Equal(int64(1), count)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
