package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/auth"
	apperrors "github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/errors"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockIdentityVerifier is a mock implementation of auth.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.IdentityClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.IdentityClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already exists",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, new(MockIdentityVerifier))
			user, err := service.Register(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.True(t, strings.HasPrefix(user.PasswordHash, "scrypt:"))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					Email:        "test@example.com",
					PasswordHash: hash,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "user not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					Email:        "test@example.com",
					PasswordHash: hash,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "federated account has no usable password",
			email:    "federated@example.com",
			password: "anything",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "federated@example.com").Return(&model.User{
					ID:           8,
					Email:        "federated@example.com",
					PasswordHash: auth.FederatedSentinel("uid-1"),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, new(MockIdentityVerifier))
			user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, uint(7), user.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginWithIDToken(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockIdentityVerifier)
		expectedError error
		checkUser     func(*testing.T, *model.User)
	}{
		{
			name: "existing user",
			setupMock: func(mRepo *MockUserRepository, mVerify *MockIdentityVerifier) {
				mVerify.On("VerifyIDToken", mock.Anything, "token").Return(&auth.IdentityClaims{
					UID: "uid-1", Email: "user@example.com",
				}, nil)
				mRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
					ID: 3, Email: "user@example.com",
				}, nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, uint(3), u.ID)
			},
		},
		{
			name: "auto-provisions new user with sentinel",
			setupMock: func(mRepo *MockUserRepository, mVerify *MockIdentityVerifier) {
				mVerify.On("VerifyIDToken", mock.Anything, "token").Return(&auth.IdentityClaims{
					UID: "uid-9", Email: "new@example.com",
				}, nil)
				mRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "new@example.com" && u.PasswordHash == auth.FederatedSentinel("uid-9")
				})).Return(nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, "new@example.com", u.Email)
			},
		},
		{
			name: "verification failure",
			setupMock: func(mRepo *MockUserRepository, mVerify *MockIdentityVerifier) {
				mVerify.On("VerifyIDToken", mock.Anything, "token").Return(nil, assert.AnError)
			},
			expectedError: apperrors.ErrInvalidToken,
		},
		{
			name: "token carries no email",
			setupMock: func(mRepo *MockUserRepository, mVerify *MockIdentityVerifier) {
				mVerify.On("VerifyIDToken", mock.Anything, "token").Return(&auth.IdentityClaims{UID: "uid-2"}, nil)
			},
			expectedError: apperrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockVerifier := new(MockIdentityVerifier)
			tt.setupMock(mockRepo, mockVerifier)

			service := NewAuthService(mockRepo, mockVerifier)
			user, email, err := service.LoginWithIDToken(context.Background(), "token")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, user.Email, email)
				tt.checkUser(t, user)
			}

			mockRepo.AssertExpectations(t)
			mockVerifier.AssertExpectations(t)
		})
	}
}
