package web

import (
	"errors"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/client/session"
)

// Messages shown next to the auth and settings forms.
const (
	MsgFillAllFields    = "Please fill in all fields"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	MsgInvalidChoice    = "Please choose a valid option"
	MsgSettingsSaved    = "Settings saved"
	MsgSettingsFailed   = "Could not save your settings. Please try again."

	MinPasswordLength = 6
)

// FormError is a validation failure whose text is shown to the user as is.
type FormError struct {
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

func formError(msg string) error {
	return &FormError{Message: msg}
}

// FormMessage returns the user-facing text of err if it is a form or auth
// error, and "" otherwise.
func FormMessage(err error) string {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	if ae, ok := session.IsAuthError(err); ok {
		return ae.Message
	}
	return ""
}

type LoginForm struct {
	Email    string
	Password string
	Next     string
}

func parseLoginForm(v url.Values) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(v.Get("email")),
		Password: v.Get("password"),
		Next:     v.Get("next"),
	}
}

func (f LoginForm) Validate() error {
	if f.Email == "" || f.Password == "" {
		return formError(MsgFillAllFields)
	}
	return nil
}

type SignupForm struct {
	Name              string
	Email             string
	Password          string
	ConfirmPassword   string
	PreferredMode     models.Mode
	PreferredLanguage models.Language
	Next              string
}

func parseSignupForm(v url.Values) SignupForm {
	f := SignupForm{
		Name:              strings.TrimSpace(v.Get("name")),
		Email:             strings.TrimSpace(v.Get("email")),
		Password:          v.Get("password"),
		ConfirmPassword:   v.Get("confirmPassword"),
		PreferredMode:     models.Mode(v.Get("preferredMode")),
		PreferredLanguage: models.Language(v.Get("preferredLanguage")),
		Next:              v.Get("next"),
	}
	if f.PreferredMode == "" {
		f.PreferredMode = models.ModeBoth
	}
	if f.PreferredLanguage == "" {
		f.PreferredLanguage = models.LanguageASL
	}
	return f
}

// Validate applies the checks in the order the form presents them.
func (f SignupForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return formError(MsgFillAllFields)
	}
	if f.Password != f.ConfirmPassword {
		return formError(MsgPasswordMismatch)
	}
	if len([]rune(f.Password)) < MinPasswordLength {
		return formError(MsgPasswordTooShort)
	}
	if !f.PreferredMode.Valid() || !f.PreferredLanguage.Valid() {
		return formError(MsgInvalidChoice)
	}
	return nil
}

func (f SignupForm) Request() session.SignupRequest {
	return session.SignupRequest{
		Email:             f.Email,
		Password:          f.Password,
		Name:              f.Name,
		PreferredMode:     f.PreferredMode,
		PreferredLanguage: f.PreferredLanguage,
	}
}

// profilePatch builds the patch for the profile form. Every field is
// required.
func profilePatch(v url.Values) (models.UserPatch, error) {
	name := strings.TrimSpace(v.Get("name"))
	email := strings.TrimSpace(v.Get("email"))
	mode := models.Mode(v.Get("preferredMode"))
	lang := models.Language(v.Get("preferredLanguage"))

	if name == "" || email == "" {
		return models.UserPatch{}, formError(MsgFillAllFields)
	}
	if !mode.Valid() || !lang.Valid() {
		return models.UserPatch{}, formError(MsgInvalidChoice)
	}
	return models.UserPatch{
		Name:              &name,
		Email:             &email,
		PreferredMode:     &mode,
		PreferredLanguage: &lang,
	}, nil
}

// accessibilityPatch builds the patch for the accessibility form. Unchecked
// boxes are absent from the form and mean false.
func accessibilityPatch(v url.Values) (models.UserPatch, error) {
	a := &models.AccessibilityPatch{
		TextSize:               models.Ptr(models.TextSize(v.Get("textSize"))),
		ContrastMode:           models.Ptr(models.ContrastMode(v.Get("contrastMode"))),
		ColorBlindMode:         models.Ptr(models.ColorBlindMode(v.Get("colorBlindMode"))),
		VibrateOnNotifications: models.Ptr(checked(v, "vibrateOnNotifications")),
		ReduceMotion:           models.Ptr(checked(v, "reduceMotion")),
		ScreenReaderOptimized:  models.Ptr(checked(v, "screenReaderOptimized")),
	}
	p := models.UserPatch{AccessibilitySettings: a}
	if err := p.Validate(); err != nil {
		return models.UserPatch{}, formError(MsgInvalidChoice)
	}
	return p, nil
}

func checked(v url.Values, name string) bool {
	switch v.Get(name) {
	case "on", "true", "1":
		return true
	}
	return false
}
