package service

import (
	"testing"
	"time"

	"izmarket/config"
	"izmarket/internal/auth"
	"izmarket/internal/domain"
	"izmarket/internal/models"
	"izmarket/internal/repository"
	"izmarket/pkg/mail"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "izmarket-test",
		},
	}
	// Empty mail config means the mailer is disabled, not nil-deref.
	s.svc = NewAuthService(cfg, repository.NewUserRepository(s.db), mail.New(&cfg.Mail))
}

func (s *AuthServiceTestSuite) TestRegisterAndLogin() {
	u, access, refresh, err := s.svc.Register("Marie", "Dupont", "marie@example.com", "+33612345678", "secret123")
	s.Require().NoError(err)
	s.NotZero(u.ID)
	s.NotEmpty(u.UID)
	s.Equal(domain.RoleUser, u.Role)
	s.True(u.IsActive)
	s.NotEmpty(access)
	s.NotEmpty(refresh)
	s.NotEqual("secret123", u.PasswordHash)

	logged, access, _, err := s.svc.Login("marie@example.com", "secret123")
	s.Require().NoError(err)
	s.Equal(u.ID, logged.ID)
	s.NotEmpty(access)

	claims, err := auth.ParseAccessToken(&s.svc.cfg.JWT, access)
	s.Require().NoError(err)
	s.Equal(u.ID, claims.UserID)
	s.Equal(domain.RoleUser, claims.Role)
}

func (s *AuthServiceTestSuite) TestRegisterValidation() {
	_, _, _, err := s.svc.Register("", "Dupont", "x@example.com", "", "secret123")
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, _, _, err := s.svc.Register("Marie", "Dupont", "marie@example.com", "", "secret123")
	s.Require().NoError(err)

	_, _, _, err = s.svc.Register("Autre", "Marie", "marie@example.com", "", "autrepass")
	s.ErrorIs(err, ErrEmailExists)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, _, _, err := s.svc.Register("Marie", "Dupont", "marie@example.com", "", "secret123")
	s.Require().NoError(err)

	_, _, _, err = s.svc.Login("marie@example.com", "wrong")
	s.ErrorIs(err, ErrInvalidCreds)

	_, _, _, err = s.svc.Login("nobody@example.com", "secret123")
	s.ErrorIs(err, ErrInvalidCreds)
}

func (s *AuthServiceTestSuite) TestLoginDeactivatedAccount() {
	u, _, _, err := s.svc.Register("Marie", "Dupont", "marie@example.com", "", "secret123")
	s.Require().NoError(err)
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", u.ID).
		Update("is_active", false).Error)

	_, _, _, err = s.svc.Login("marie@example.com", "secret123")
	s.ErrorIs(err, ErrInactive)
}

func (s *AuthServiceTestSuite) TestRefreshToken() {
	u, _, refresh, err := s.svc.Register("Marie", "Dupont", "marie@example.com", "", "secret123")
	s.Require().NoError(err)

	access, next, err := s.svc.RefreshToken(refresh)
	s.Require().NoError(err)
	s.NotEmpty(next)

	claims, err := auth.ParseAccessToken(&s.svc.cfg.JWT, access)
	s.Require().NoError(err)
	s.Equal(u.ID, claims.UserID)

	_, _, err = s.svc.RefreshToken("garbage")
	s.ErrorIs(err, auth.ErrInvalidToken)
}

func (s *AuthServiceTestSuite) TestPasswordHashIsBcrypt() {
	u, _, _, err := s.svc.Register("Marie", "Dupont", "marie@example.com", "", "secret123")
	s.Require().NoError(err)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
