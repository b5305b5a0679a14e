package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/namas-shop/namas-backend/internal/users"
	"github.com/namas-shop/namas-backend/pkg/auth"
	"github.com/namas-shop/namas-backend/pkg/auth/session"
	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/db/models"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/security"
)

const (
	duplicateEmailMessage   = "User with this email already exists."
	badCredentialsMessage   = "Login failed."
	invalidCredentialDetail = "Invalid email or password."
	confirmMismatchMessage  = "Password and confirm password mismatch."
)

// Service exposes registration, login, and session introspection.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}

// sessionManager is the liveness-store surface the service needs, satisfied
// by session.Manager.
type sessionManager interface {
	Establish(ctx context.Context, sessionID string, userID uuid.UUID) error
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	repo     *users.Repository
	dbClient *db.Client
	sessions sessionManager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
}

// NewService constructs an account service instance.
func NewService(repo *users.Repository, dbClient *db.Client, sessions sessionManager, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
	}, nil
}

// Register creates a new account and logs it in. Password checks mirror the
// signup form contract: complexity first, then the confirmation match, each
// reported as a field error.
func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if !security.MeetsComplexity(input.Password) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid data.").
			WithDetails(map[string][]string{
				"password": {security.ComplexityMessage},
			})
	}
	if input.Password != input.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid data.").
			WithDetails(map[string][]string{
				"confirm_password": {confirmMismatchMessage},
			})
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, duplicateEmailMessage).
					WithDetails(map[string][]string{
						"email": {duplicateEmailMessage},
					})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.establish(ctx, user)
}

// Login authenticates by email and password and establishes a session. The
// caller cannot tell an unknown email from a wrong password.
func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, badCredentials()
	}
	if !user.IsActive {
		return nil, badCredentials()
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update last login")
	}

	return s.establish(ctx, user)
}

// Logout revokes the session's liveness entry. The cookie itself is cleared
// by the transport layer.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session: revoke")
	}
	return nil
}

// CurrentUser resolves the authenticated caller's identity.
func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "User is not authenticated.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return &UserDTO{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *service) establish(ctx context.Context, user *models.User) (*Session, error) {
	sessionID := session.NewSessionID()
	if err := s.sessions.Establish(ctx, sessionID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session: establish")
	}

	token, err := auth.MintAccessToken(s.jwtCfg, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting session token")
	}

	return &Session{Token: token, SessionID: sessionID, UserID: user.ID}, nil
}

func badCredentials() error {
	return pkgerrors.New(pkgerrors.CodeBadCredentials, badCredentialsMessage).
		WithDetails(map[string][]string{
			"non_field_errors": {invalidCredentialDetail},
		})
}
