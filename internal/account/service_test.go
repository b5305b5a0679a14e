package account

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namas-shop/namas-backend/internal/users"
	"github.com/namas-shop/namas-backend/pkg/auth"
	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db"
	"github.com/namas-shop/namas-backend/pkg/db/models"
	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
	"github.com/namas-shop/namas-backend/pkg/security"
)

// fakeSessions records liveness writes in memory.
type fakeSessions struct {
	mu     sync.Mutex
	active map[string]uuid.UUID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{active: map[string]uuid.UUID{}}
}

func (f *fakeSessions) Establish(_ context.Context, sessionID string, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active[sessionID] = userID
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, sessionID)
	return nil
}

func (f *fakeSessions) has(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.active[sessionID]
	return ok
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "namas-api",
		ExpirationMinutes: 60,
		CookieName:        "namas_session",
	}
}

func newTestService(t *testing.T, name string) (Service, *fakeSessions, *db.Client) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.User{}, &models.Profile{}))

	sessions := newFakeSessions()
	svc, err := NewService(users.NewRepository(client.DB()), client, sessions, testJWTConfig(), config.PasswordConfig{})
	require.NoError(t, err)
	return svc, sessions, client
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		FirstName:       "Nora",
		LastName:        "Velasquez",
		Email:           email,
		Password:        "Sunrise9!",
		ConfirmPassword: "Sunrise9!",
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newTestService(t, "account_weak_password")

	input := registerInput("weak@example.com")
	input.Password = "short"
	input.ConfirmPassword = "short"

	_, err := svc.Register(context.Background(), input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	require.Contains(t, details, "password")
	assert.Equal(t, security.ComplexityMessage, details["password"][0])
}

func TestRegisterRejectsConfirmMismatch(t *testing.T) {
	svc, _, _ := newTestService(t, "account_confirm_mismatch")

	input := registerInput("mismatch@example.com")
	input.ConfirmPassword = "Different9!"

	_, err := svc.Register(context.Background(), input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	require.Contains(t, details, "confirm_password")
	assert.Equal(t, "Password and confirm password mismatch.", details["confirm_password"][0])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t, "account_duplicate_email")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("taken@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("taken@example.com"))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "User with this email already exists.", typed.Message())
}

func TestRegisterEstablishesSession(t *testing.T) {
	svc, sessions, _ := newTestService(t, "account_register_session")

	session, err := svc.Register(context.Background(), registerInput("fresh@example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.True(t, sessions.has(session.SessionID))

	claims, err := auth.ParseAccessToken(testJWTConfig(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, claims.ID)
}

func TestLoginRoundtrip(t *testing.T) {
	svc, sessions, _ := newTestService(t, "account_login")
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput("login@example.com"))
	require.NoError(t, err)

	session, err := svc.Login(ctx, LoginInput{Email: "login@example.com", Password: "Sunrise9!"})
	require.NoError(t, err)
	assert.True(t, sessions.has(session.SessionID))
	assert.Equal(t, registered.UserID, session.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t, "account_wrong_password")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("victim@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "victim@example.com", Password: "Wrong9!pw"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBadCredentials, typed.Code())
	assert.Equal(t, "Login failed.", typed.Message())

	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Invalid email or password."}, details["non_field_errors"])
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t, "account_unknown_email")

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "Sunrise9!"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBadCredentials, typed.Code())
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _, client := newTestService(t, "account_inactive")
	ctx := context.Background()

	session, err := svc.Register(ctx, registerInput("inactive@example.com"))
	require.NoError(t, err)

	err = client.DB().Model(&models.User{}).
		Where("id = ?", session.UserID).
		Update("is_active", false).Error
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "inactive@example.com", Password: "Sunrise9!"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeBadCredentials, pkgerrors.As(err).Code())
}

func TestCurrentUser(t *testing.T) {
	svc, _, _ := newTestService(t, "account_current_user")
	ctx := context.Background()

	session, err := svc.Register(ctx, registerInput("whoami@example.com"))
	require.NoError(t, err)

	dto, err := svc.CurrentUser(ctx, session.UserID)
	require.NoError(t, err)
	assert.Equal(t, session.UserID.String(), dto.ID)
	assert.Equal(t, "whoami@example.com", dto.Email)
	assert.Equal(t, "Nora", dto.FirstName)
	assert.Equal(t, "Velasquez", dto.LastName)

	_, err = svc.CurrentUser(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions, _ := newTestService(t, "account_logout")
	ctx := context.Background()

	session, err := svc.Register(ctx, registerInput("bye@example.com"))
	require.NoError(t, err)
	require.True(t, sessions.has(session.SessionID))

	require.NoError(t, svc.Logout(ctx, session.SessionID))
	assert.False(t, sessions.has(session.SessionID))
}
