package helper

import "strings"

const (
	ThemeCookie = "theme"

	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// NormalizeTheme maps anything unknown to system.
func NormalizeTheme(v string) string {
	switch v = strings.ToLower(strings.TrimSpace(v)); v {
	case ThemeLight, ThemeDark:
		return v
	default:
		return ThemeSystem
	}
}

// ResolveDark decides whether a page renders dark. For "system" the
// Sec-CH-Prefers-Color-Scheme client hint is used when the browser sends it.
func ResolveDark(theme, hint string) bool {
	switch NormalizeTheme(theme) {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	}
	return strings.EqualFold(strings.Trim(strings.TrimSpace(hint), `"`), "dark")
}
