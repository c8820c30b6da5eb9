// Package guard decides whether a protected page may be shown for the
// current session state, and wraps handlers with that decision.
package guard

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gesturetalk/internal/client/session"
)

type Decision int

const (
	Render Decision = iota
	Loading
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decide maps a session state to what a protected route should do.
// Protected content is rendered only for an authenticated session.
func Decide(state session.State) Decision {
	switch state {
	case session.StateAuthenticated:
		return Render
	case session.StateUnauthenticated:
		return Redirect
	default:
		return Loading
	}
}

// StateSource reports the current session state.
type StateSource interface {
	State() session.State
}

type Guard struct {
	source    StateSource
	loginPath string
	loading   http.Handler
}

// New returns a Guard redirecting signed-out visitors to loginPath. While
// the session is still being restored, loading is served instead.
func New(source StateSource, loginPath string, loading http.Handler) *Guard {
	if loading == nil {
		loading = http.HandlerFunc(LoadingPage)
	}
	return &Guard{source: source, loginPath: loginPath, loading: loading}
}

// Protect wraps next so it only runs for an authenticated session.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch Decide(g.source.State()) {
		case Render:
			next.ServeHTTP(w, r)
		case Redirect:
			http.Redirect(w, r, LoginURL(g.loginPath, r.URL.RequestURI()), http.StatusFound)
		default:
			g.loading.ServeHTTP(w, r)
		}
	})
}

// LoginURL builds the login address that returns to next after sign-in.
func LoginURL(loginPath, next string) string {
	if next == "" || next == "/" {
		return loginPath
	}
	return loginPath + "?" + url.Values{"next": {next}}.Encode()
}

const loadingBody = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Loading…</title></head>
<body><div class="loading" role="status" aria-live="polite">Loading…</div></body></html>
`

// LoadingPage is a neutral placeholder that asks the browser to retry
// shortly. It never reveals protected content.
func LoadingPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Refresh", "1")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(loadingBody))
}
