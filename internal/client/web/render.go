package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login.html",
	"signup.html",
	"dashboard.html",
	"sign_to_speech.html",
	"text_to_sign.html",
	"video_call.html",
	"chat.html",
	"dictionary.html",
	"community.html",
	"settings.html",
}

var templateFuncs = template.FuncMap{
	"clock": func(t time.Time) string {
		return t.Format("15:04")
	},
	"when": func(t time.Time) string {
		return t.Format("Jan 2, 15:04")
	},
	"percent": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
	"seconds": func(d time.Duration) string {
		return fmt.Sprintf("%.1fs", d.Seconds())
	},
}

type renderer struct {
	pages map[string]*template.Template
}

// newRenderer parses every page together with the shared layout.
func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// pageData is what the layout sees. Data carries the view's own model.
type pageData struct {
	AppName string
	Title   string
	Active  string
	Nav     []NavItem
	User    *models.User
	Error   string
	Notice  string
	Data    any
}

// render writes page name inside the layout. Flash messages are consumed
// here, so it must be the only writer of the response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name, title, active string, data any) {
	t, ok := s.views.pages[name]
	if !ok {
		s.logger.Error(r.Context(), "unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	f := s.popFlashes(w, r)
	pd := pageData{
		AppName: common.AppName,
		Title:   title,
		Active:  active,
		Nav:     Navigation,
		Error:   f.Error,
		Notice:  f.Notice,
		Data:    data,
	}
	if u, ok := s.deps.Session.CurrentUser(); ok {
		pd.User = &u
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		s.logger.Error(r.Context(), "failed to render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
