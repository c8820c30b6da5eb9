package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gesturetalk/internal/client/services"
	"github.com/dmitrijs2005/gesturetalk/internal/client/session"
	"github.com/dmitrijs2005/gesturetalk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeAssistant struct{}

func (fakeAssistant) Ask(_ context.Context, question string) (string, error) {
	return "answer to " + question, nil
}

type harness struct {
	t       *testing.T
	server  *Server
	store   *session.Store
	cookies map[string]*http.Cookie
}

// newHarness builds a server over real collaborators. The session store is
// initialized unless uninitialized is set.
func newHarness(t *testing.T, uninitialized bool) *harness {
	t.Helper()

	store := session.NewStore(localstore.NewMemoryRepository(), session.NewSimulatedAuthenticator(0), logging.Discard())
	if !uninitialized {
		require.NoError(t, store.Initialize(context.Background()))
	}

	dict := services.NewDictionary()
	srv, err := NewServer(Deps{
		Session:    store,
		Dictionary: dict,
		Community:  services.NewCommunity(),
		Chat:       services.NewChat(fakeAssistant{}, logging.Discard()),
		Recognizer: services.NewRecognizer(0),
		Signer:     services.NewSigner(dict),
		VideoCall:  services.NewVideoCall("http://meet.local", "secret"),
		Cookies:    NewCookieStore(testSecret),
		Logger:     logging.Discard(),
	})
	require.NoError(t, err)

	return &harness{t: t, server: srv, store: store, cookies: map[string]*http.Cookie{}}
}

// do sends a request carrying the cookies collected so far, like a browser.
func (h *harness) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range h.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		h.cookies[c.Name] = c
	}
	return rec
}

func (h *harness) login(email string) {
	h.t.Helper()
	rec := h.do(http.MethodPost, PathLogin, url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(h.t, http.StatusSeeOther, rec.Code)
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(Deps{})
	require.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	h := newHarness(t, true)

	rec := h.do(http.MethodGet, PathHealth, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_RootRedirectsToDashboard(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodGet, PathRoot, nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))
}

func TestServer_ProtectedRoutes_RedirectWhenSignedOut(t *testing.T) {
	h := newHarness(t, false)

	for _, item := range Navigation {
		t.Run(item.ID, func(t *testing.T) {
			rec := h.do(http.MethodGet, item.Path, nil)

			require.Equal(t, http.StatusFound, rec.Code)
			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, PathLogin, loc.Path)
			assert.Equal(t, item.Path, loc.Query().Get("next"))
		})
	}
}

func TestServer_ProtectedRoute_KeepsQueryInNext(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodGet, "/dictionary?q=love", nil)

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/dictionary?q=love", loc.Query().Get("next"))
}

func TestServer_ProtectedRoute_LoadingBeforeInitialize(t *testing.T) {
	h := newHarness(t, true)

	rec := h.do(http.MethodGet, PathDashboard, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Refresh"))
	assert.NotContains(t, rec.Body.String(), `data-nav=`)
}

func TestServer_PublicRoutes_RenderWhileUnknown(t *testing.T) {
	h := newHarness(t, true)

	rec := h.do(http.MethodGet, PathLogin, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign In")
}

func TestServer_UnknownPath_NotFound(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodGet, "/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Login_EmptyFieldsFlashesMessage(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodPost, PathLogin, url.Values{"email": {"ada@example.com"}, "next": {PathSettings}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fsettings", rec.Header().Get("Location"))
	assert.Equal(t, session.StateUnauthenticated, h.store.State())

	page := h.do(http.MethodGet, rec.Header().Get("Location"), nil)
	assert.Contains(t, page.Body.String(), MsgFillAllFields)
	assert.Contains(t, page.Body.String(), `value="/settings"`)

	again := h.do(http.MethodGet, PathLogin, nil)
	assert.NotContains(t, again.Body.String(), MsgFillAllFields, "flash is shown once")
}

func TestServer_Login_SuccessRendersNavigation(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodPost, PathLogin, url.Values{"email": {"ada@example.com"}, "password": {"pw"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))

	page := h.do(http.MethodGet, PathDashboard, nil)
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()

	last := -1
	for _, item := range Navigation {
		i := strings.Index(body, `data-nav="`+item.ID+`"`)
		require.Greater(t, i, last, "nav item %s out of order", item.ID)
		last = i
	}
	assert.Contains(t, body, `data-nav="dashboard" aria-current="page"`)
	assert.Contains(t, body, `<span class="user-name">ada</span>`)
	assert.Contains(t, body, `<small class="user-email">ada@example.com</small>`)
	assert.Contains(t, body, `aria-hidden="true">A</div>`)
}

func TestServer_Login_FollowsSafeNext(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodPost, PathLogin, url.Values{
		"email": {"ada@example.com"}, "password": {"pw"}, "next": {"/dictionary?q=love"},
	})
	assert.Equal(t, "/dictionary?q=love", rec.Header().Get("Location"))
}

func TestServer_Login_IgnoresForeignNext(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodPost, PathLogin, url.Values{
		"email": {"ada@example.com"}, "password": {"pw"}, "next": {"https://evil.example/"},
	})
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))
}

func TestServer_LoginForm_RedirectsWhenSignedIn(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodGet, PathLogin, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))

	rec = h.do(http.MethodGet, PathSignup, nil)
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))
}

func TestServer_Signup_Validation(t *testing.T) {
	valid := url.Values{
		"name":            {"Ada"},
		"email":           {"ada@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}
	with := func(key, value string) url.Values {
		v := url.Values{}
		for k, vs := range valid {
			v[k] = vs
		}
		v.Set(key, value)
		return v
	}

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{name: "missing name", form: with("name", ""), want: MsgFillAllFields},
		{name: "mismatch", form: with("confirmPassword", "secret2"), want: MsgPasswordMismatch},
		{name: "bad mode", form: with("preferredMode", "loud"), want: MsgInvalidChoice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false)

			rec := h.do(http.MethodPost, PathSignup, tt.form)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, PathSignup, rec.Header().Get("Location"))

			page := h.do(http.MethodGet, PathSignup, nil)
			assert.Contains(t, page.Body.String(), tt.want)
			assert.Equal(t, session.StateUnauthenticated, h.store.State())
		})
	}
}

func TestServer_Signup_ShortPassword(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodPost, PathSignup, url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"}, "password": {"abc"}, "confirmPassword": {"abc"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := h.do(http.MethodGet, PathSignup, nil)
	assert.Contains(t, page.Body.String(), MsgPasswordTooShort)
}

func TestServer_Signup_Success(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodPost, PathSignup, url.Values{
		"name":              {"Ada Lovelace"},
		"email":             {"ada@example.com"},
		"password":          {"secret1"},
		"confirmPassword":   {"secret1"},
		"preferredMode":     {"deaf"},
		"preferredLanguage": {"BSL"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathDashboard, rec.Header().Get("Location"))

	u, ok := h.store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, models.ModeDeaf, u.PreferredMode)
	assert.Equal(t, models.LanguageBSL, u.PreferredLanguage)
}

func TestServer_Logout(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodPost, PathLogout, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathLogin, rec.Header().Get("Location"))
	assert.Equal(t, session.StateUnauthenticated, h.store.State())

	rec = h.do(http.MethodGet, PathDashboard, nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = h.do(http.MethodPost, PathLogout, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code, "logout while signed out is harmless")
}

func TestServer_Logout_GetNotAllowed(t *testing.T) {
	h := newHarness(t, false)

	rec := h.do(http.MethodGet, PathLogout, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Settings_SaveProfile(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodPost, PathSettings+"/profile", url.Values{
		"name":              {"Ada L"},
		"email":             {"ada@example.org"},
		"preferredMode":     {"mute"},
		"preferredLanguage": {"JSL"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathSettings, rec.Header().Get("Location"))

	u, ok := h.store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ada L", u.Name)
	assert.Equal(t, "ada@example.org", u.Email)
	assert.Equal(t, models.ModeMute, u.PreferredMode)
	assert.Equal(t, session.LoginID("ada@example.com"), u.ID, "id is unchanged")

	page := h.do(http.MethodGet, PathSettings, nil)
	assert.Contains(t, page.Body.String(), MsgSettingsSaved)
	assert.Contains(t, page.Body.String(), `<span class="user-name">Ada L</span>`)
}

func TestServer_Settings_RejectsBadChoice(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")
	before, _ := h.store.CurrentUser()

	rec := h.do(http.MethodPost, PathSettings+"/accessibility", url.Values{"textSize": {"huge"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	after, _ := h.store.CurrentUser()
	assert.Equal(t, before, after)

	page := h.do(http.MethodGet, PathSettings, nil)
	assert.Contains(t, page.Body.String(), MsgInvalidChoice)
}

func TestServer_Settings_AccessibilityAppliedToLayout(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	h.do(http.MethodPost, PathSettings+"/accessibility", url.Values{
		"textSize":       {"large"},
		"contrastMode":   {"high"},
		"colorBlindMode": {"tritanopia"},
		"reduceMotion":   {"on"},
	})

	u, _ := h.store.CurrentUser()
	assert.Equal(t, models.TextSizeLarge, u.AccessibilitySettings.TextSize)
	assert.False(t, u.AccessibilitySettings.VibrateOnNotifications)
	assert.True(t, u.AccessibilitySettings.ReduceMotion)

	page := h.do(http.MethodGet, PathDashboard, nil)
	assert.Contains(t, page.Body.String(), `class="text-large contrast-high cb-tritanopia reduce-motion"`)
}

func TestServer_Dictionary(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	page := h.do(http.MethodGet, "/dictionary?q=fam", nil)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Family")
	assert.NotContains(t, page.Body.String(), "Thank you")

	rec := h.do(http.MethodPost, "/dictionary/2/favorite?favorites=1", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dictionary?favorites=1", rec.Header().Get("Location"))

	page = h.do(http.MethodGet, "/dictionary?favorites=1", nil)
	assert.Contains(t, page.Body.String(), "Thank you")

	rec = h.do(http.MethodPost, "/dictionary/999/favorite", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Community_PublishAndLike(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodPost, PathCommunity+"/posts", url.Values{"content": {"Hello everyone"}, "category": {"Learning"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := h.do(http.MethodGet, PathCommunity, nil)
	assert.Contains(t, page.Body.String(), "Hello everyone")

	rec = h.do(http.MethodPost, PathCommunity+"/posts", url.Values{"content": {"   "}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page = h.do(http.MethodGet, PathCommunity, nil)
	assert.Contains(t, page.Body.String(), "Please write something before posting")

	rec = h.do(http.MethodPost, PathCommunity+"/posts/missing/like", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_SignToSpeech_TranscriptDownload(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodGet, PathSignToSpeech+"/transcript", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodPost, PathSignToSpeech+"/capture", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := h.do(http.MethodGet, PathSignToSpeech, nil)
	assert.Contains(t, page.Body.String(), services.RecognizedPhrase)

	rec = h.do(http.MethodGet, PathSignToSpeech+"/transcript", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.RecognizedPhrase, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), services.TranscriptFileName)
}

func TestServer_TextToSign(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	page := h.do(http.MethodGet, "/text-to-sign?text=Hello+friend&speed=2", nil)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "friend")

	page = h.do(http.MethodGet, "/text-to-sign?text=Hello&speed=9", nil)
	assert.Contains(t, page.Body.String(), "Playback speed must be between 0.5x and 2x")
}

func TestServer_VideoCall(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodPost, PathVideoCall+"/start", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, PathVideoCall, loc.Path)
	assert.Len(t, loc.Query().Get("meet"), services.MeetingIDLength)

	rec = h.do(http.MethodPost, PathVideoCall+"/join", url.Values{"meetingId": {" abc123 "}})
	assert.Equal(t, "/video-call?meet=ABC123", rec.Header().Get("Location"))

	page := h.do(http.MethodGet, "/video-call?meet=ABC123", nil)
	assert.Contains(t, page.Body.String(), "http://meet.local")

	rec = h.do(http.MethodPost, PathVideoCall+"/join", url.Values{"meetingId": {"  "}})
	assert.Equal(t, PathVideoCall, rec.Header().Get("Location"))
	page = h.do(http.MethodGet, PathVideoCall, nil)
	assert.Contains(t, page.Body.String(), "Please enter a meeting ID")
}

func TestServer_Chat(t *testing.T) {
	h := newHarness(t, false)
	h.login("ada@example.com")

	rec := h.do(http.MethodPost, PathAIChat, url.Values{"message": {"how do I sign hello"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := h.do(http.MethodGet, PathAIChat, nil)
	body := page.Body.String()
	assert.Contains(t, body, "how do I sign hello")
	assert.Contains(t, body, "answer to how do I sign hello")
}
