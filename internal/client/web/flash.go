package web

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	flashSessionName = "gesturetalk_flash"

	flashError  = "error"
	flashNotice = "notice"
)

func init() {
	// Flashes are kept as []interface{} inside the gob-encoded cookie.
	gob.Register([]interface{}{})
}

// NewCookieStore returns the store backing flash messages. The cookie is
// scoped to the whole site and dies with the browser session.
func NewCookieStore(secret []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// flash queues msg under kind for the next rendered page.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess, err := s.deps.Cookies.Get(r, flashSessionName)
	if err != nil {
		s.logger.Debug(r.Context(), "discarding unreadable flash cookie", "error", err)
	}
	sess.AddFlash(msg, kind)
	if err := sess.Save(r, w); err != nil {
		s.logger.Error(r.Context(), "failed to save flash", "error", err)
	}
}

type flashes struct {
	Error  string
	Notice string
}

// popFlashes returns and clears the queued messages. It must run before the
// response body is written.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) flashes {
	sess, err := s.deps.Cookies.Get(r, flashSessionName)
	if err != nil {
		return flashes{}
	}

	var f flashes
	errs := sess.Flashes(flashError)
	notices := sess.Flashes(flashNotice)
	if len(errs) == 0 && len(notices) == 0 {
		return f
	}
	if len(errs) > 0 {
		f.Error, _ = errs[len(errs)-1].(string)
	}
	if len(notices) > 0 {
		f.Notice, _ = notices[len(notices)-1].(string)
	}
	if err := sess.Save(r, w); err != nil {
		s.logger.Error(r.Context(), "failed to clear flash", "error", err)
	}
	return f
}
