// Package web is the view router of the shell: a gorilla/mux route table
// serving the auth forms and the guarded feature views as server-rendered
// HTML.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gesturetalk/internal/client/async"
	"github.com/dmitrijs2005/gesturetalk/internal/client/guard"
	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/client/services"
	"github.com/dmitrijs2005/gesturetalk/internal/client/session"
	"github.com/dmitrijs2005/gesturetalk/internal/logging"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// SessionStore is the part of *session.Store the views use.
type SessionStore interface {
	State() session.State
	CurrentUser() (models.User, bool)
	Login(ctx context.Context, email, password string) *async.Future[models.User]
	Signup(ctx context.Context, req session.SignupRequest) *async.Future[models.User]
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, bool, error)
}

// Deps are the collaborators of the router. All fields are required.
type Deps struct {
	Session    SessionStore
	Dictionary services.Dictionary
	Community  services.Community
	Chat       services.Chat
	Recognizer services.Recognizer
	Signer     services.Signer
	VideoCall  services.VideoCall
	Cookies    sessions.Store
	Logger     logging.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Session == nil:
		return errors.New("session store is required")
	case d.Dictionary == nil, d.Community == nil, d.Chat == nil,
		d.Recognizer == nil, d.Signer == nil, d.VideoCall == nil:
		return errors.New("feature services are required")
	case d.Cookies == nil:
		return errors.New("cookie store is required")
	case d.Logger == nil:
		return errors.New("logger is required")
	}
	return nil
}

type Server struct {
	deps    Deps
	logger  logging.Logger
	views   *renderer
	handler http.Handler
}

// NewServer parses the templates and builds the route table.
func NewServer(deps Deps) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	views, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		deps:   deps,
		logger: deps.Logger.With("component", "web"),
		views:  views,
	}
	s.handler = accessLog(s.logger, s.routes())
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc(PathHealth, s.health).Methods(http.MethodGet)
	r.Handle(PathRoot, http.RedirectHandler(PathDashboard, http.StatusFound))

	r.HandleFunc(PathLogin, s.loginForm).Methods(http.MethodGet)
	r.HandleFunc(PathLogin, s.login).Methods(http.MethodPost)
	r.HandleFunc(PathSignup, s.signupForm).Methods(http.MethodGet)
	r.HandleFunc(PathSignup, s.signup).Methods(http.MethodPost)
	r.HandleFunc(PathLogout, s.logout).Methods(http.MethodPost)

	g := guard.New(s.deps.Session, PathLogin, http.HandlerFunc(guard.LoadingPage))
	p := r.NewRoute().Subrouter()
	p.Use(g.Protect)

	p.HandleFunc(PathDashboard, s.dashboard).Methods(http.MethodGet)

	p.HandleFunc(PathSignToSpeech, s.signToSpeech).Methods(http.MethodGet)
	p.HandleFunc(PathSignToSpeech+"/capture", s.capture).Methods(http.MethodPost)
	p.HandleFunc(PathSignToSpeech+"/transcript", s.transcript).Methods(http.MethodGet)

	p.HandleFunc(PathTextToSign, s.textToSign).Methods(http.MethodGet)

	p.HandleFunc(PathVideoCall, s.videoCall).Methods(http.MethodGet)
	p.HandleFunc(PathVideoCall+"/start", s.startCall).Methods(http.MethodPost)
	p.HandleFunc(PathVideoCall+"/join", s.joinCall).Methods(http.MethodPost)

	p.HandleFunc(PathAIChat, s.chat).Methods(http.MethodGet)
	p.HandleFunc(PathAIChat, s.sendChat).Methods(http.MethodPost)

	p.HandleFunc(PathDictionary, s.dictionary).Methods(http.MethodGet)
	p.HandleFunc(PathDictionary+"/{id}/favorite", s.toggleFavorite).Methods(http.MethodPost)

	p.HandleFunc(PathCommunity, s.community).Methods(http.MethodGet)
	p.HandleFunc(PathCommunity+"/posts", s.publishPost).Methods(http.MethodPost)
	p.HandleFunc(PathCommunity+"/posts/{id}/like", s.toggleLike).Methods(http.MethodPost)
	p.HandleFunc(PathCommunity+"/posts/{id}/bookmark", s.toggleBookmark).Methods(http.MethodPost)

	p.HandleFunc(PathSettings, s.settings).Methods(http.MethodGet)
	p.HandleFunc(PathSettings+"/profile", s.saveProfile).Methods(http.MethodPost)
	p.HandleFunc(PathSettings+"/accessibility", s.saveAccessibility).Methods(http.MethodPost)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
