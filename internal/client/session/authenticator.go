package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/google/uuid"
)

// SignupRequest carries the fields collected by the signup form.
type SignupRequest struct {
	Email             string
	Password          string
	Name              string
	PreferredMode     models.Mode
	PreferredLanguage models.Language
}

// Authenticator turns credentials into a user. Implementations may block
// (network calls) and must honour ctx.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Signup(ctx context.Context, req SignupRequest) (models.User, error)
}

var errEmptyEmail = errors.New("empty email")

// SimulatedAuthenticator stands in for a backend. It accepts any credentials
// after a fixed delay and fabricates the user locally.
type SimulatedAuthenticator struct {
	latency time.Duration
	newID   func() (uuid.UUID, error)
}

func NewSimulatedAuthenticator(latency time.Duration) *SimulatedAuthenticator {
	return &SimulatedAuthenticator{latency: latency, newID: uuid.NewV7}
}

func (a *SimulatedAuthenticator) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login returns a user named after the local part of email. The id is
// derived from the email so repeated logins get the same identity.
func (a *SimulatedAuthenticator) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := a.wait(ctx); err != nil {
		return models.User{}, err
	}

	if strings.TrimSpace(email) == "" {
		return models.User{}, errEmptyEmail
	}

	return models.User{
		ID:                    LoginID(email),
		Email:                 email,
		Name:                  LocalPart(email),
		PreferredMode:         models.ModeBoth,
		PreferredLanguage:     models.LanguageASL,
		AccessibilitySettings: models.DefaultAccessibilitySettings(),
	}, nil
}

// Signup returns a new user with a fresh time-ordered id.
func (a *SimulatedAuthenticator) Signup(ctx context.Context, req SignupRequest) (models.User, error) {
	if err := a.wait(ctx); err != nil {
		return models.User{}, err
	}

	if strings.TrimSpace(req.Email) == "" {
		return models.User{}, errEmptyEmail
	}

	id, err := a.newID()
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:                    id.String(),
		Email:                 req.Email,
		Name:                  req.Name,
		PreferredMode:         req.PreferredMode,
		PreferredLanguage:     req.PreferredLanguage,
		AccessibilitySettings: models.DefaultAccessibilitySettings(),
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// LocalPart returns the part of email before the first '@'.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// LoginID maps an email to a stable identifier.
func LoginID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String()
}
