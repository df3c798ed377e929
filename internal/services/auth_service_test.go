package services

import (
	"context"
	"testing"
	"time"

	"boardsuite/internal/common"
	"boardsuite/internal/middleware"
	"boardsuite/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMonthlyReport(ctx context.Context, year, month int) (*models.MonthlyReport, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyReport), args.Error(1)
}

func (m *MockCacheService) SetMonthlyReport(ctx context.Context, year, month int, report *models.MonthlyReport, ttl time.Duration) error {
	args := m.Called(ctx, year, month, report, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockCacheService) SetDashboardStats(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) SetRefreshToken(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenHash, userID, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockCache    *MockCacheService
	service      AuthService
	user         *models.User
	password     string
	ctx          context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = &MockUserRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewAuthService(suite.mockUserRepo, suite.mockCache, "test-secret")
	suite.ctx = context.Background()

	suite.password = "correct horse battery staple"
	hash, err := bcrypt.GenerateFromPassword([]byte(suite.password), bcrypt.MinCost)
	assert.NoError(suite.T(), err)
	suite.user = &models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Admin User",
	}
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	suite.mockUserRepo.On("GetByUsername", mock.Anything, "admin").Return(suite.user, nil).Once()
	suite.mockCache.On("SetRefreshToken", mock.Anything, mock.AnythingOfType("string"), suite.user.ID.String(), mock.Anything).Return(nil).Once()

	tokens, err := suite.service.Login(suite.ctx, "admin", suite.password)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), tokens.Token)
	assert.NotEmpty(suite.T(), tokens.RefreshToken)

	// The access token carries the user's identity in its claims.
	claims := &middleware.AccessClaims{}
	_, err = jwt.ParseWithClaims(tokens.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID.String(), claims.Subject)
	assert.Equal(suite.T(), "admin", claims.Username)
	assert.Equal(suite.T(), "Admin User", claims.FullName)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.mockUserRepo.On("GetByUsername", mock.Anything, "admin").Return(suite.user, nil).Once()

	_, err := suite.service.Login(suite.ctx, "admin", "wrong")

	var authErr *common.AuthenticationError
	assert.ErrorAs(suite.T(), err, &authErr)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUserSameError() {
	suite.mockUserRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil).Once()

	_, err := suite.service.Login(suite.ctx, "ghost", suite.password)

	// Unknown user and wrong password are indistinguishable to the caller.
	var authErr *common.AuthenticationError
	assert.ErrorAs(suite.T(), err, &authErr)
	assert.Equal(suite.T(), "Invalid username or password.", authErr.Message)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	suite.mockUserRepo.On("UsernameExists", mock.Anything, "admin").Return(true, nil).Once()

	_, err := suite.service.Register(suite.ctx, "admin", "password", "Admin User")

	var conflict *common.ConflictError
	assert.ErrorAs(suite.T(), err, &conflict)
}

func (suite *AuthServiceTestSuite) TestRegister_HashesPassword() {
	suite.mockUserRepo.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
	suite.mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "newuser" &&
			u.PasswordHash != "secret" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
	})).Return(nil).Once()

	user, err := suite.service.Register(suite.ctx, "newuser", "secret", "New User")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "newuser", user.Username)
}

func (suite *AuthServiceTestSuite) TestRefresh_RotatesToken() {
	refreshToken := "0123456789abcdef"
	tokenHash := hashToken(refreshToken)

	suite.mockCache.On("GetRefreshToken", mock.Anything, tokenHash).Return(suite.user.ID.String(), nil).Once()
	suite.mockUserRepo.On("GetByID", mock.Anything, suite.user.ID).Return(suite.user, nil).Once()
	suite.mockCache.On("DeleteRefreshToken", mock.Anything, tokenHash).Return(nil).Once()
	suite.mockCache.On("SetRefreshToken", mock.Anything, mock.AnythingOfType("string"), suite.user.ID.String(), mock.Anything).Return(nil).Once()

	tokens, err := suite.service.Refresh(suite.ctx, refreshToken)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), refreshToken, tokens.RefreshToken)
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownTokenRejected() {
	refreshToken := "expired-or-forged"

	suite.mockCache.On("GetRefreshToken", mock.Anything, hashToken(refreshToken)).Return("", nil).Once()

	_, err := suite.service.Refresh(suite.ctx, refreshToken)

	var authErr *common.AuthenticationError
	assert.ErrorAs(suite.T(), err, &authErr)
}
