package service

import (
	"errors"
	"regexp"
	"time"

	"gogett/config"
	"gogett/internal/auth"
	"gogett/internal/models"
	"gogett/internal/repository"
	"gogett/pkg/otp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuthService handles phone-OTP registration and login for couriers.
type AuthService struct {
	cfg        *config.Config
	couriers   *repository.CourierRepository
	blacklist  *repository.BlacklistRepository
	nonDigitRe *regexp.Regexp
}

func NewAuthService(cfg *config.Config, couriers *repository.CourierRepository, blacklist *repository.BlacklistRepository) *AuthService {
	return &AuthService{
		cfg:        cfg,
		couriers:   couriers,
		blacklist:  blacklist,
		nonDigitRe: regexp.MustCompile(`\D`),
	}
}

// RegisterResult reports whether the phone number was already known and
// carries the confirmation code for delivery to the device.
type RegisterResult struct {
	Message  string
	ConfCode string
}

// Register creates the courier on first contact and issues a fresh
// confirmation code either way. Code delivery (SMS/push) is an external
// collaborator; the code is returned to the boundary for dispatch.
func (s *AuthService) Register(contactNo string) (*RegisterResult, error) {
	contactNo = s.nonDigitRe.ReplaceAllString(contactNo, "")
	if contactNo == "" {
		return nil, ErrInvalidCode
	}

	message := "existing_user"
	courier, err := s.couriers.GetByContactNo(contactNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		courier = &models.Courier{
			PublicID:  uuid.New().String(),
			ContactNo: contactNo,
		}
		if err := s.couriers.Create(courier); err != nil {
			return nil, err
		}
		message = "new_user"
	} else if err != nil {
		return nil, err
	}

	code, err := otp.Generate(s.cfg.OTP.Digits)
	if err != nil {
		return nil, err
	}
	hash, err := otp.Hash(code)
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(s.cfg.OTP.Expiry)
	courier.OtpHash = hash
	courier.OtpExpiresAt = &expires
	if err := s.couriers.Save(courier); err != nil {
		return nil, err
	}
	log.Info().Str("contact_no", contactNo).Str("result", message).Msg("confirmation code issued")
	return &RegisterResult{Message: message, ConfCode: code}, nil
}

// LoginResult carries the issued bearer token.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
}

// Login verifies the confirmation code, confirms the number on first login
// and issues an access token.
func (s *AuthService) Login(contactNo, code string) (*LoginResult, error) {
	contactNo = s.nonDigitRe.ReplaceAllString(contactNo, "")
	courier, err := s.couriers.GetByContactNo(contactNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}
	if courier.OtpHash == "" || courier.OtpExpiresAt == nil || time.Now().After(*courier.OtpExpiresAt) {
		return nil, ErrInvalidCode
	}
	if !otp.Verify(courier.OtpHash, code) {
		return nil, ErrInvalidCode
	}

	if !courier.IsConfirm {
		now := time.Now()
		courier.IsConfirm = true
		courier.ConfirmDate = &now
	}
	courier.IsLoggedIn = true
	courier.OtpHash = ""
	courier.OtpExpiresAt = nil
	if err := s.couriers.Save(courier); err != nil {
		return nil, err
	}

	token, err := auth.GenerateAccessToken(&s.cfg.JWT, courier.ID, courier.PublicID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.cfg.JWT.Expiry.Seconds()),
	}, nil
}

// Logout blacklists the presented token and clears the logged-in flag.
func (s *AuthService) Logout(courierID uint, token string, expiresAt time.Time) error {
	if err := s.blacklist.Add(token, expiresAt); err != nil {
		return err
	}
	courier, err := s.couriers.GetByID(courierID)
	if err != nil {
		return err
	}
	courier.IsLoggedIn = false
	return s.couriers.Save(courier)
}
