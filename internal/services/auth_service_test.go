package services

import (
	"testing"

	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
	seeded  []uint64
}

func (suite *AuthServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.UserActivity{})
	suite.Require().NoError(err)

	suite.seeded = nil
	seed := func(userID uint64) error {
		suite.seeded = append(suite.seeded, userID)
		return nil
	}

	suite.service = NewAuthService(
		repository.NewUserRepository(suite.db),
		repository.NewActivityRepository(suite.db),
		seed,
	)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) register(username, password string) *models.User {
	user, err := suite.service.Register(RegisterInput{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
		Name:     "Test User",
	})
	suite.Require().NoError(err)
	return user
}

func (suite *AuthServiceTestSuite) TestRegister() {
	user := suite.register("alice", "Sup3rSecret!")

	suite.NotZero(user.ID)
	suite.NotEmpty(user.Salt)
	suite.NotEqual("Sup3rSecret!", user.PasswordHash)
	suite.Equal(models.UserStatusActive, user.Status)

	// Defaults were provisioned for the new account.
	suite.Equal([]uint64{user.ID}, suite.seeded)

	var count int64
	suite.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ?", user.ID, constants.ActivityRegistered).
		Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsShortUsername() {
	_, err := suite.service.Register(RegisterInput{Username: "al", Password: "Sup3rSecret!"})
	suite.ErrorIs(err, ErrInvalidUsername)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsWeakPassword() {
	for _, password := range []string{
		"alllowercase1!",
		"ALLUPPERCASE1!",
		"NoDigitsHere!",
		"NoSpecials123",
		"Ab1!",
	} {
		_, err := suite.service.Register(RegisterInput{Username: "alice", Password: password})
		suite.ErrorIs(err, ErrInvalidPassword, "password %q should be rejected", password)
	}
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsBadEmail() {
	_, err := suite.service.Register(RegisterInput{Username: "alice", Password: "Sup3rSecret!", Email: "not-an-email"})
	suite.ErrorIs(err, ErrInvalidEmail)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsDuplicateUsername() {
	suite.register("alice", "Sup3rSecret!")

	_, err := suite.service.Register(RegisterInput{Username: "alice", Password: "An0therSecret!"})
	suite.ErrorIs(err, ErrUsernameTaken)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("alice", "Sup3rSecret!")

	user, err := suite.service.Login(LoginInput{Username: "alice", Password: "Sup3rSecret!"})
	suite.Require().NoError(err)
	suite.Equal("alice", user.Username)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPasswordIsRecorded() {
	registered := suite.register("alice", "Sup3rSecret!")

	_, err := suite.service.Login(LoginInput{Username: "alice", Password: "WrongSecret1!"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	var count int64
	suite.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ? AND status = ?",
			registered.ID, constants.ActivityLogin, constants.ActivityStatusFailure).
		Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownUser() {
	_, err := suite.service.Login(LoginInput{Username: "nobody", Password: "Sup3rSecret!"})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestChangePassword() {
	user := suite.register("alice", "Sup3rSecret!")

	err := suite.service.ChangePassword(user.ID, "WrongSecret1!", "N3wSecret!!")
	suite.ErrorIs(err, ErrWrongPassword)

	err = suite.service.ChangePassword(user.ID, "Sup3rSecret!", "weak")
	suite.ErrorIs(err, ErrInvalidPassword)

	err = suite.service.ChangePassword(user.ID, "Sup3rSecret!", "N3wSecret!!")
	suite.Require().NoError(err)

	_, err = suite.service.Login(LoginInput{Username: "alice", Password: "Sup3rSecret!"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.service.Login(LoginInput{Username: "alice", Password: "N3wSecret!!"})
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile() {
	user := suite.register("alice", "Sup3rSecret!")

	updated, err := suite.service.UpdateProfile(user.ID, UpdateProfileInput{
		Name:     "Alice A.",
		Username: "alice2025",
		Email:    "alice@example.net",
	})
	suite.Require().NoError(err)
	suite.Equal("alice2025", updated.Username)
	suite.Equal("Alice A.", updated.Name)
}

func (suite *AuthServiceTestSuite) TestUpdateProfileRejectsTakenUsername() {
	suite.register("alice", "Sup3rSecret!")
	bob := suite.register("bobby", "Sup3rSecret!")

	_, err := suite.service.UpdateProfile(bob.ID, UpdateProfileInput{Username: "alice"})
	suite.ErrorIs(err, ErrUsernameTaken)
}

func (suite *AuthServiceTestSuite) TestDeactivateBlocksLogin() {
	user := suite.register("alice", "Sup3rSecret!")

	suite.Require().NoError(suite.service.Deactivate(user.ID))

	_, err := suite.service.Login(LoginInput{Username: "alice", Password: "Sup3rSecret!"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.service.GetUser(user.ID)
	suite.ErrorIs(err, ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
