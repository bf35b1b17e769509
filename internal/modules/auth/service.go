package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/foliolabs/core/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials covers every login failure. The cause is never
// distinguished in the response.
var ErrBadCredentials = errors.New("invalid email or password")

// failureDelay slows down credential guessing.
const failureDelay = 3 * time.Second

// Service checks admin credentials against the configured identity.
type Service struct {
	cfg   *config.AppConfig
	delay time.Duration
}

func NewService(cfg *config.AppConfig) *Service {
	return &Service{cfg: cfg, delay: failureDelay}
}

// Authenticate verifies the email and password pair. When no admin is
// configured every attempt fails. Failures pay a fixed delay.
func (s *Service) Authenticate(email, password string) error {
	adminEmail := s.cfg.Admin.Email
	hash := s.cfg.Admin.PasswordBcrypt

	if adminEmail == "" || hash == "" {
		time.Sleep(s.delay)
		return ErrBadCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil

	if !emailOK || !passOK {
		time.Sleep(s.delay)
		return ErrBadCredentials
	}
	return nil
}
