// Package models holds the records the shell keeps in memory and in local
// storage. JSON tags match the persisted user record.
package models

import (
	"fmt"
	"unicode"

	"github.com/dmitrijs2005/gesturetalk/internal/common"
)

type Mode string

const (
	ModeDeaf Mode = "deaf"
	ModeMute Mode = "mute"
	ModeBoth Mode = "both"
)

var Modes = []Mode{ModeDeaf, ModeMute, ModeBoth}

func (m Mode) Valid() bool {
	return m == ModeDeaf || m == ModeMute || m == ModeBoth
}

type Language string

const (
	LanguageASL Language = "ASL"
	LanguageISL Language = "ISL"
	LanguageBSL Language = "BSL"
	LanguageJSL Language = "JSL"
)

var Languages = []Language{LanguageASL, LanguageISL, LanguageBSL, LanguageJSL}

func (l Language) Valid() bool {
	switch l {
	case LanguageASL, LanguageISL, LanguageBSL, LanguageJSL:
		return true
	}
	return false
}

type TextSize string

const (
	TextSizeSmall      TextSize = "small"
	TextSizeMedium     TextSize = "medium"
	TextSizeLarge      TextSize = "large"
	TextSizeExtraLarge TextSize = "extra-large"
)

var TextSizes = []TextSize{TextSizeSmall, TextSizeMedium, TextSizeLarge, TextSizeExtraLarge}

func (s TextSize) Valid() bool {
	switch s {
	case TextSizeSmall, TextSizeMedium, TextSizeLarge, TextSizeExtraLarge:
		return true
	}
	return false
}

type ContrastMode string

const (
	ContrastNormal ContrastMode = "normal"
	ContrastHigh   ContrastMode = "high"
)

var ContrastModes = []ContrastMode{ContrastNormal, ContrastHigh}

func (c ContrastMode) Valid() bool {
	return c == ContrastNormal || c == ContrastHigh
}

type ColorBlindMode string

const (
	ColorBlindNone         ColorBlindMode = "none"
	ColorBlindProtanopia   ColorBlindMode = "protanopia"
	ColorBlindDeuteranopia ColorBlindMode = "deuteranopia"
	ColorBlindTritanopia   ColorBlindMode = "tritanopia"
)

var ColorBlindModes = []ColorBlindMode{ColorBlindNone, ColorBlindProtanopia, ColorBlindDeuteranopia, ColorBlindTritanopia}

func (c ColorBlindMode) Valid() bool {
	switch c {
	case ColorBlindNone, ColorBlindProtanopia, ColorBlindDeuteranopia, ColorBlindTritanopia:
		return true
	}
	return false
}

type AccessibilitySettings struct {
	TextSize               TextSize       `json:"textSize"`
	ContrastMode           ContrastMode   `json:"contrastMode"`
	ColorBlindMode         ColorBlindMode `json:"colorBlindMode"`
	VibrateOnNotifications bool           `json:"vibrateOnNotifications"`
	ReduceMotion           bool           `json:"reduceMotion"`
	ScreenReaderOptimized  bool           `json:"screenReaderOptimized"`
}

// DefaultAccessibilitySettings are applied to every newly created user.
func DefaultAccessibilitySettings() AccessibilitySettings {
	return AccessibilitySettings{
		TextSize:               TextSizeMedium,
		ContrastMode:           ContrastNormal,
		ColorBlindMode:         ColorBlindNone,
		VibrateOnNotifications: true,
		ReduceMotion:           false,
		ScreenReaderOptimized:  false,
	}
}

func (a AccessibilitySettings) Validate() error {
	if !a.TextSize.Valid() {
		return fmt.Errorf("%w: text size %q", common.ErrorValidation, a.TextSize)
	}
	if !a.ContrastMode.Valid() {
		return fmt.Errorf("%w: contrast mode %q", common.ErrorValidation, a.ContrastMode)
	}
	if !a.ColorBlindMode.Valid() {
		return fmt.Errorf("%w: color blind mode %q", common.ErrorValidation, a.ColorBlindMode)
	}
	return nil
}

// User is the identity and preferences of the visitor.
type User struct {
	ID                    string                `json:"id"`
	Email                 string                `json:"email"`
	Name                  string                `json:"name"`
	PreferredMode         Mode                  `json:"preferredMode"`
	PreferredLanguage     Language              `json:"preferredLanguage"`
	AccessibilitySettings AccessibilitySettings `json:"accessibilitySettings"`
}

// Validate reports whether u is a well-formed record. Restored records that
// fail it are treated as corrupt.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: empty id", common.ErrorValidation)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: empty email", common.ErrorValidation)
	}
	if !u.PreferredMode.Valid() {
		return fmt.Errorf("%w: preferred mode %q", common.ErrorValidation, u.PreferredMode)
	}
	if !u.PreferredLanguage.Valid() {
		return fmt.Errorf("%w: preferred language %q", common.ErrorValidation, u.PreferredLanguage)
	}
	return u.AccessibilitySettings.Validate()
}

// Initial returns the upper-cased first letter of the name, for avatars.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
