package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/db"
	"github.com/veryfy/veryfy-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-secret", 15*time.Minute, 168*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	service := setupAuthServiceTest(t)

	user, tokens, err := service.Register("merchant@example.com", "password123", "Merchant")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Duplicate email is rejected before hitting the unique index.
	_, _, err = service.Register("merchant@example.com", "password456", "Other")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, _, err := service.Register("merchant@example.com", "password123", "Merchant")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid credentials",
			email:    "merchant@example.com",
			password: "password123",
		},
		{
			name:     "Wrong password",
			email:    "merchant@example.com",
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: "password123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := service.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.NotEmpty(t, tokens.AccessToken)
		})
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	service := setupAuthServiceTest(t)

	_, tokens, err := service.Register("merchant@example.com", "password123", "Merchant")
	require.NoError(t, err)

	refreshed, err := service.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = service.RefreshTokens(tokens.AccessToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	_, err = service.RefreshTokens("garbage")
	assert.Error(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	service := setupAuthServiceTest(t)

	user, _, err := service.Register("merchant@example.com", "password123", "Merchant")
	require.NoError(t, err)

	updated, err := service.UpdateProfile(user.ID, "New Name", "Acme LLC", "LLC")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Acme LLC", updated.BusinessName)
	assert.Equal(t, "LLC", updated.BusinessType)

	// Blank fields leave existing values alone.
	updated, err = service.UpdateProfile(user.ID, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Acme LLC", updated.BusinessName)

	_, err = service.UpdateProfile(9999, "Name", "", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
