package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/client/services"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
	"github.com/gorilla/mux"
)

func withQuery(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

/*************
 * dashboard
 *************/

type dashboardView struct {
	Actions []QuickAction
	Stats   []Stat
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	s.render(w, r, "dashboard.html", "Dashboard", "dashboard", dashboardView{
		Actions: QuickActions,
		Stats:   DashboardStats,
	})
}

/*************
 * sign to speech
 *************/

type signToSpeechView struct {
	Recognition *models.Recognition
	FileName    string
}

func (s *Server) signToSpeech(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	v := signToSpeechView{FileName: services.TranscriptFileName}
	if rec, ok := s.deps.Recognizer.Last(); ok {
		v.Recognition = &rec
	}
	s.render(w, r, "sign_to_speech.html", "Sign to Speech", "sign-to-speech", v)
}

func (s *Server) capture(w http.ResponseWriter, r *http.Request) {
	if _, err := s.deps.Recognizer.Recognize(r.Context()); err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.logger.Warn(r.Context(), "recognition failed", "error", err)
		s.flash(w, r, flashError, "Recognition failed. Please try again.")
	}
	s.redirect(w, r, PathSignToSpeech)
}

func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	name, content, ok := s.deps.Recognizer.Transcript()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(content)
}

/*************
 * text to sign
 *************/

type textToSignView struct {
	Text   string
	Speed  float64
	Speeds []float64
	Frames []models.SignFrame
	Error  string
}

var playbackSpeeds = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

func (s *Server) textToSign(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	q := r.URL.Query()
	v := textToSignView{Text: q.Get("text"), Speed: 1, Speeds: playbackSpeeds}
	if raw := q.Get("speed"); raw != "" {
		speed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			v.Error = "Playback speed must be a number"
		} else {
			v.Speed = speed
		}
	}

	if v.Error == "" && strings.TrimSpace(v.Text) != "" {
		frames, err := s.deps.Signer.Translate(v.Text, v.Speed)
		if err != nil {
			v.Error = "Playback speed must be between 0.5x and 2x"
		}
		v.Frames = frames
	}
	s.render(w, r, "text_to_sign.html", "Text to Sign", "text-to-sign", v)
}

/*************
 * video call
 *************/

type videoCallView struct {
	MeetingID string
	EmbedURL  string
}

func (s *Server) videoCall(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var v videoCallView
	if meet := r.URL.Query().Get("meet"); meet != "" {
		id, err := s.deps.VideoCall.Join(meet)
		if err == nil {
			v.MeetingID = id
			v.EmbedURL, err = s.deps.VideoCall.EmbedURL(id, u)
		}
		if err != nil {
			s.logger.Warn(r.Context(), "cannot open meeting", "error", err)
			v = videoCallView{}
		}
	}
	s.render(w, r, "video_call.html", "Video Call", "video-call", v)
}

func meetingURL(id string) string {
	return PathVideoCall + "?" + url.Values{"meet": {id}}.Encode()
}

func (s *Server) startCall(w http.ResponseWriter, r *http.Request) {
	id, err := s.deps.VideoCall.Start()
	if err != nil {
		s.logger.Error(r.Context(), "cannot create meeting", "error", err)
		s.flash(w, r, flashError, "Could not start a meeting. Please try again.")
		s.redirect(w, r, PathVideoCall)
		return
	}
	s.redirect(w, r, meetingURL(id))
}

func (s *Server) joinCall(w http.ResponseWriter, r *http.Request) {
	id, err := s.deps.VideoCall.Join(r.PostFormValue("meetingId"))
	if err != nil {
		s.flash(w, r, flashError, "Please enter a meeting ID")
		s.redirect(w, r, PathVideoCall)
		return
	}
	s.redirect(w, r, meetingURL(id))
}

/*************
 * ai chat
 *************/

type chatView struct {
	Messages []models.ChatMessage
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	s.render(w, r, "chat.html", "AI Assistant", "ai-chat", chatView{Messages: s.deps.Chat.Messages()})
}

func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	s.deps.Chat.Send(r.Context(), r.PostFormValue("message"))
	s.redirect(w, r, PathAIChat)
}

/*************
 * dictionary
 *************/

type dictionaryView struct {
	Filter       services.DictionaryFilter
	Entries      []models.GestureEntry
	Categories   []string
	Difficulties []string
	Query        template.URL
}

func (s *Server) dictionary(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	q := r.URL.Query()
	f := services.DictionaryFilter{
		Query:         q.Get("q"),
		Category:      q.Get("category"),
		Difficulty:    q.Get("difficulty"),
		FavoritesOnly: checked(q, "favorites"),
	}
	if f.Category == "" {
		f.Category = services.FilterAll
	}
	if f.Difficulty == "" {
		f.Difficulty = services.FilterAll
	}

	s.render(w, r, "dictionary.html", "Sign Dictionary", "dictionary", dictionaryView{
		Filter:       f,
		Entries:      s.deps.Dictionary.Search(f),
		Categories:   services.DictionaryCategories,
		Difficulties: services.DictionaryDifficulties,
		Query:        template.URL(r.URL.RawQuery),
	})
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	if _, err := s.deps.Dictionary.ToggleFavorite(mux.Vars(r)["id"]); err != nil {
		s.notFoundOr500(w, r, err)
		return
	}
	s.redirect(w, r, withQuery(PathDictionary, r.URL.RawQuery))
}

/*************
 * community
 *************/

type communityView struct {
	Category   string
	Categories []string
	Posts      []models.Post
	Query      template.URL
}

func (s *Server) community(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = services.FilterAll
	}
	s.render(w, r, "community.html", "Community", "community", communityView{
		Category:   category,
		Categories: services.CommunityCategories,
		Posts:      s.deps.Community.List(category),
		Query:      template.URL(r.URL.RawQuery),
	})
}

func (s *Server) publishPost(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	_, err := s.deps.Community.Publish(u.Name, u.Initial(), r.PostFormValue("content"), r.PostFormValue("category"))
	if err != nil {
		s.flash(w, r, flashError, "Please write something before posting")
	}
	s.redirect(w, r, PathCommunity)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	if _, err := s.deps.Community.ToggleLike(mux.Vars(r)["id"]); err != nil {
		s.notFoundOr500(w, r, err)
		return
	}
	s.redirect(w, r, withQuery(PathCommunity, r.URL.RawQuery))
}

func (s *Server) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	if _, err := s.deps.Community.ToggleBookmark(mux.Vars(r)["id"]); err != nil {
		s.notFoundOr500(w, r, err)
		return
	}
	s.redirect(w, r, withQuery(PathCommunity, r.URL.RawQuery))
}

/*************
 * settings
 *************/

type settingsView struct {
	Modes           []models.Mode
	Languages       []models.Language
	TextSizes       []models.TextSize
	ContrastModes   []models.ContrastMode
	ColorBlindModes []models.ColorBlindMode
}

func (s *Server) settings(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	s.render(w, r, "settings.html", "Settings", "settings", settingsView{
		Modes:           models.Modes,
		Languages:       models.Languages,
		TextSizes:       models.TextSizes,
		ContrastModes:   models.ContrastModes,
		ColorBlindModes: models.ColorBlindModes,
	})
}

func (s *Server) saveProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	patch, err := profilePatch(r.PostForm)
	s.applyPatch(w, r, patch, err)
}

func (s *Server) saveAccessibility(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	patch, err := accessibilityPatch(r.PostForm)
	s.applyPatch(w, r, patch, err)
}

func (s *Server) applyPatch(w http.ResponseWriter, r *http.Request, patch models.UserPatch, formErr error) {
	if formErr != nil {
		s.flash(w, r, flashError, FormMessage(formErr))
		s.redirect(w, r, PathSettings)
		return
	}

	_, ok, err := s.deps.Session.UpdateUser(r.Context(), patch)
	switch {
	case err != nil:
		s.logger.Error(r.Context(), "settings not saved", "error", err)
		s.flash(w, r, flashError, MsgSettingsFailed)
	case !ok:
		s.redirect(w, r, PathLogin)
		return
	default:
		s.flash(w, r, flashNotice, MsgSettingsSaved)
	}
	s.redirect(w, r, PathSettings)
}

func (s *Server) notFoundOr500(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		http.NotFound(w, r)
		return
	}
	s.logger.Error(r.Context(), "request failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
