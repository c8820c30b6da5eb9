package web

import "strings"

const (
	PathRoot         = "/"
	PathLogin        = "/login"
	PathSignup       = "/signup"
	PathLogout       = "/logout"
	PathHealth       = "/healthz"
	PathDashboard    = "/dashboard"
	PathSignToSpeech = "/sign-to-speech"
	PathTextToSign   = "/text-to-sign"
	PathVideoCall    = "/video-call"
	PathAIChat       = "/ai-chat"
	PathDictionary   = "/dictionary"
	PathCommunity    = "/community"
	PathSettings     = "/settings"
)

// NavItem is one entry of the navigation frame.
type NavItem struct {
	ID    string
	Label string
	Path  string
}

// Navigation lists the protected views in display order.
var Navigation = []NavItem{
	{ID: "dashboard", Label: "Dashboard", Path: PathDashboard},
	{ID: "sign-to-speech", Label: "Sign to Speech", Path: PathSignToSpeech},
	{ID: "text-to-sign", Label: "Text to Sign", Path: PathTextToSign},
	{ID: "video-call", Label: "Video Call", Path: PathVideoCall},
	{ID: "ai-chat", Label: "AI Assistant", Path: PathAIChat},
	{ID: "dictionary", Label: "Sign Dictionary", Path: PathDictionary},
	{ID: "community", Label: "Community", Path: PathCommunity},
	{ID: "settings", Label: "Settings", Path: PathSettings},
}

// QuickAction is a dashboard shortcut.
type QuickAction struct {
	Title       string
	Description string
	Path        string
}

var QuickActions = []QuickAction{
	{Title: "Sign to Speech", Description: "Convert sign language to spoken words", Path: PathSignToSpeech},
	{Title: "Text to Sign", Description: "See text converted to sign language", Path: PathTextToSign},
	{Title: "Video Call", Description: "Video calls with live sign translation", Path: PathVideoCall},
	{Title: "AI Assistant", Description: "Get help with sign language questions", Path: PathAIChat},
	{Title: "Sign Dictionary", Description: "Look up signs and their meanings", Path: PathDictionary},
	{Title: "Community", Description: "Connect with other users", Path: PathCommunity},
}

// Stat is a dashboard progress figure.
type Stat struct {
	Label string
	Value string
}

var DashboardStats = []Stat{
	{Label: "Signs Learned", Value: "127"},
	{Label: "Practice Time", Value: "2.5h"},
	{Label: "Video Calls", Value: "8"},
}

// safeNext returns next when it names a protected view, otherwise the
// dashboard. Only exact view paths, optionally with a query, are accepted.
func safeNext(next string) string {
	path, _, _ := strings.Cut(next, "?")
	for _, item := range Navigation {
		if item.Path == path {
			return next
		}
	}
	return PathDashboard
}
