package service

import (
	"testing"
	"time"

	"gogett/config"
	"gogett/internal/models"
	"gogett/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.BlacklistedToken{}))
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret: "test-secret",
			Expiry: 3 * time.Hour,
			Issuer: "gogett",
		},
		OTP: config.OTPConfig{
			Digits: 5,
			Expiry: 10 * time.Minute,
		},
		Finance: config.FinanceConfig{MinWithdrawal: decimal.NewFromInt(5000)},
	}
	svc := NewAuthService(cfg, repository.NewCourierRepository(db), repository.NewBlacklistRepository(db))
	return svc, db
}

func TestRegisterCreatesCourier(t *testing.T) {
	svc, db := newAuthService(t)

	result, err := svc.Register("077-123-4567")
	require.NoError(t, err)
	assert.Equal(t, "new_user", result.Message)
	assert.Len(t, result.ConfCode, 5)

	var courier models.Courier
	require.NoError(t, db.Where("contact_no = ?", "0771234567").First(&courier).Error)
	assert.NotEmpty(t, courier.PublicID)
	assert.False(t, courier.IsConfirm)
	assert.NotEmpty(t, courier.OtpHash)
}

func TestRegisterExistingCourier(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("0771234567")
	require.NoError(t, err)
	result, err := svc.Register("0771234567")
	require.NoError(t, err)
	assert.Equal(t, "existing_user", result.Message)
}

func TestLoginWithIssuedCode(t *testing.T) {
	svc, db := newAuthService(t)

	reg, err := svc.Register("0771234567")
	require.NoError(t, err)

	login, err := svc.Login("0771234567", reg.ConfCode)
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "bearer", login.TokenType)

	var courier models.Courier
	require.NoError(t, db.Where("contact_no = ?", "0771234567").First(&courier).Error)
	assert.True(t, courier.IsConfirm)
	assert.True(t, courier.IsLoggedIn)
	assert.Empty(t, courier.OtpHash) // single use
}

func TestLoginRejectsWrongCode(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("0771234567")
	require.NoError(t, err)
	_, err = svc.Login("0771234567", "00000")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestLoginRejectsUnknownNumber(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Login("0779999999", "12345")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestLoginRejectsExpiredCode(t *testing.T) {
	svc, db := newAuthService(t)

	reg, err := svc.Register("0771234567")
	require.NoError(t, err)
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.Courier{}).
		Where("contact_no = ?", "0771234567").
		Update("otp_expires_at", expired).Error)

	_, err = svc.Login("0771234567", reg.ConfCode)
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, db := newAuthService(t)

	reg, err := svc.Register("0771234567")
	require.NoError(t, err)
	_, err = svc.Login("0771234567", reg.ConfCode)
	require.NoError(t, err)

	var courier models.Courier
	require.NoError(t, db.Where("contact_no = ?", "0771234567").First(&courier).Error)

	blacklist := repository.NewBlacklistRepository(db)
	require.NoError(t, svc.Logout(courier.ID, "some-token", time.Now().Add(time.Hour)))
	assert.True(t, blacklist.IsBlacklisted("some-token"))

	require.NoError(t, db.First(&courier, courier.ID).Error)
	assert.False(t, courier.IsLoggedIn)
}
