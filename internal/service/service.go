package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/niveshak/finplan/internal/config"
	"github.com/niveshak/finplan/internal/integrations/cas"
	"github.com/niveshak/finplan/internal/models"
	"github.com/niveshak/finplan/internal/projection"
	"github.com/niveshak/finplan/internal/repository"
	"github.com/niveshak/finplan/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo       *repository.Repository
	engine     *projection.Engine
	mailer     *email.Sender
	statements *cas.Client
	log        *logrus.Logger
	config     *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, mailer *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		engine:     projection.NewEngine(repo, log),
		mailer:     mailer,
		statements: cas.NewClient(log),
		log:        log,
		config:     cfg,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// RevertExpiredRoles downgrades users whose premium role expired. Invoked on
// a schedule; safe to run concurrently with projection requests since it only
// touches the user-role columns.
func (s *Service) RevertExpiredRoles(ctx context.Context) error {
	reverted, err := s.repo.RevertExpiredRoles(ctx)
	if err != nil {
		return err
	}
	if reverted > 0 {
		s.log.Infof("Reverted %d expired premium roles", reverted)
	}
	return nil
}
