package models

import (
	"fmt"

	"github.com/dmitrijs2005/gesturetalk/internal/common"
)

// AccessibilityPatch lists accessibility fields to overwrite. Nil fields are
// left as they are.
type AccessibilityPatch struct {
	TextSize               *TextSize       `json:"textSize,omitempty"`
	ContrastMode           *ContrastMode   `json:"contrastMode,omitempty"`
	ColorBlindMode         *ColorBlindMode `json:"colorBlindMode,omitempty"`
	VibrateOnNotifications *bool           `json:"vibrateOnNotifications,omitempty"`
	ReduceMotion           *bool           `json:"reduceMotion,omitempty"`
	ScreenReaderOptimized  *bool           `json:"screenReaderOptimized,omitempty"`
}

// UserPatch lists the user fields that may be updated after creation.
// The id is deliberately absent.
type UserPatch struct {
	Email                 *string             `json:"email,omitempty"`
	Name                  *string             `json:"name,omitempty"`
	PreferredMode         *Mode               `json:"preferredMode,omitempty"`
	PreferredLanguage     *Language           `json:"preferredLanguage,omitempty"`
	AccessibilitySettings *AccessibilityPatch `json:"accessibilitySettings,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	if p.Email != nil || p.Name != nil || p.PreferredMode != nil || p.PreferredLanguage != nil {
		return false
	}
	return p.AccessibilitySettings == nil || p.AccessibilitySettings.IsEmpty()
}

func (p AccessibilityPatch) IsEmpty() bool {
	return p.TextSize == nil && p.ContrastMode == nil && p.ColorBlindMode == nil &&
		p.VibrateOnNotifications == nil && p.ReduceMotion == nil && p.ScreenReaderOptimized == nil
}

// Validate rejects enum values outside their sets.
func (p UserPatch) Validate() error {
	if p.PreferredMode != nil && !p.PreferredMode.Valid() {
		return fmt.Errorf("%w: preferred mode %q", common.ErrorValidation, *p.PreferredMode)
	}
	if p.PreferredLanguage != nil && !p.PreferredLanguage.Valid() {
		return fmt.Errorf("%w: preferred language %q", common.ErrorValidation, *p.PreferredLanguage)
	}
	if a := p.AccessibilitySettings; a != nil {
		if a.TextSize != nil && !a.TextSize.Valid() {
			return fmt.Errorf("%w: text size %q", common.ErrorValidation, *a.TextSize)
		}
		if a.ContrastMode != nil && !a.ContrastMode.Valid() {
			return fmt.Errorf("%w: contrast mode %q", common.ErrorValidation, *a.ContrastMode)
		}
		if a.ColorBlindMode != nil && !a.ColorBlindMode.Valid() {
			return fmt.Errorf("%w: color blind mode %q", common.ErrorValidation, *a.ColorBlindMode)
		}
	}
	return nil
}

// ApplyPatch returns u with every field set in p overwritten. The nested
// accessibility settings are merged one level deep; nothing deeper exists.
// u itself is not modified.
func ApplyPatch(u User, p UserPatch) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PreferredMode != nil {
		u.PreferredMode = *p.PreferredMode
	}
	if p.PreferredLanguage != nil {
		u.PreferredLanguage = *p.PreferredLanguage
	}
	if a := p.AccessibilitySettings; a != nil {
		s := &u.AccessibilitySettings
		if a.TextSize != nil {
			s.TextSize = *a.TextSize
		}
		if a.ContrastMode != nil {
			s.ContrastMode = *a.ContrastMode
		}
		if a.ColorBlindMode != nil {
			s.ColorBlindMode = *a.ColorBlindMode
		}
		if a.VibrateOnNotifications != nil {
			s.VibrateOnNotifications = *a.VibrateOnNotifications
		}
		if a.ReduceMotion != nil {
			s.ReduceMotion = *a.ReduceMotion
		}
		if a.ScreenReaderOptimized != nil {
			s.ScreenReaderOptimized = *a.ScreenReaderOptimized
		}
	}
	return u
}

// Ptr returns a pointer to v. Convenient for building patches.
func Ptr[T any](v T) *T {
	return &v
}
