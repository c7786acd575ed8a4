package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// SettingsID is the primary key of the singleton settings row
const SettingsID = 1

// Settings holds the branding shown by every screen
type Settings struct {
	BrandName          string
	TextColor          string
	AccentColor        string
	BackgroundImageURL string
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func DefaultSettings() Settings {
	return Settings{
		BrandName:   "Hamburgueria",
		TextColor:   "#ffffff",
		AccentColor: "#f97316",
	}
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.BrandName) == "" {
		return fmt.Errorf("%w: brand name is required", ErrValidation)
	}
	if !hexColorRegex.MatchString(s.TextColor) {
		return fmt.Errorf("%w: text color must look like #rrggbb", ErrValidation)
	}
	if !hexColorRegex.MatchString(s.AccentColor) {
		return fmt.Errorf("%w: accent color must look like #rrggbb", ErrValidation)
	}
	return nil
}
