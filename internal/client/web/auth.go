package web

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gesturetalk/internal/client/guard"
	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/client/session"
)

type authView struct {
	Next      string
	Modes     []models.Mode
	Languages []models.Language
}

func (s *Server) authenticated() bool {
	return s.deps.Session.State() == session.StateAuthenticated
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if s.authenticated() {
		s.redirect(w, r, safeNext(next))
		return
	}
	s.render(w, r, "login.html", "Sign in", "", authView{Next: next})
}

func (s *Server) signupForm(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if s.authenticated() {
		s.redirect(w, r, safeNext(next))
		return
	}
	s.render(w, r, "signup.html", "Create account", "", authView{
		Next:      next,
		Modes:     models.Modes,
		Languages: models.Languages,
	})
}

// backTo rebuilds the form address so a failed attempt keeps ?next=.
func backTo(path, next string) string {
	if next == "" {
		return path
	}
	return path + "?" + url.Values{"next": {next}}.Encode()
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f := parseLoginForm(r.PostForm)
	if err := f.Validate(); err != nil {
		s.flash(w, r, flashError, FormMessage(err))
		s.redirect(w, r, backTo(PathLogin, f.Next))
		return
	}

	if _, err := s.deps.Session.Login(r.Context(), f.Email, f.Password).Await(r.Context()); err != nil {
		s.authFailed(w, r, err, session.LoginFailedMessage, backTo(PathLogin, f.Next))
		return
	}
	s.redirect(w, r, safeNext(f.Next))
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f := parseSignupForm(r.PostForm)
	if err := f.Validate(); err != nil {
		s.flash(w, r, flashError, FormMessage(err))
		s.redirect(w, r, backTo(PathSignup, f.Next))
		return
	}

	if _, err := s.deps.Session.Signup(r.Context(), f.Request()).Await(r.Context()); err != nil {
		s.authFailed(w, r, err, session.SignupFailedMessage, backTo(PathSignup, f.Next))
		return
	}
	s.redirect(w, r, safeNext(f.Next))
}

// authFailed reports a failed sign-in. A request that went away before the
// call finished gets no answer; the call itself still completes.
func (s *Server) authFailed(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	if r.Context().Err() != nil {
		s.logger.Debug(r.Context(), "client stopped waiting for sign-in", "error", err)
		return
	}
	msg := FormMessage(err)
	if msg == "" {
		s.logger.Error(r.Context(), "unexpected sign-in error", "error", err)
		msg = fallback
	}
	s.flash(w, r, flashError, msg)
	s.redirect(w, r, back)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Session.Logout(r.Context()); err != nil {
		s.logger.Error(r.Context(), "logout left a persisted session behind", "error", err)
	}
	s.redirect(w, r, PathLogin)
}

// requireUser returns the current user, or sends the visitor to the login
// page when the session ended between the guard check and the handler.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	u, ok := s.deps.Session.CurrentUser()
	if !ok {
		http.Redirect(w, r, guard.LoginURL(PathLogin, r.URL.RequestURI()), http.StatusFound)
	}
	return u, ok
}
