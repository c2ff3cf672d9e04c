// Package localization provides the key→template lookup used for every
// user-facing message. Lookups never fail: a missing key yields a visibly
// marked placeholder so broken catalogs surface in chat instead of crashing a
// session.
package localization

import (
	"fmt"
	"log/slog"
	"strings"
)

// Supported language codes, in the order they are offered to the user.
var SupportedLanguages = []string{"ru", "en", "fr"}

// DefaultLanguage is used when a user has no stored preference and for
// catalog fallback.
const DefaultLanguage = "en"

// IsSupported reports whether the given code has a catalog.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Localizer resolves message templates. The zero value is not usable; use New.
type Localizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Localizer {
	return &Localizer{logger: logger}
}

// Text returns the template for key in lang with {param} placeholders
// substituted. Unknown languages fall back to DefaultLanguage; unknown keys
// return an <L10N_ERROR: ...> marker.
func (l *Localizer) Text(key, lang string, params map[string]any) string {
	if !IsSupported(lang) {
		lang = DefaultLanguage
	}

	entry, ok := catalog[key]
	if !ok {
		l.logger.Warn("localization key missing", slog.String("key", key), slog.String("lang", lang))
		return fmt.Sprintf("<L10N_ERROR: %s_FOR_%s>", key, lang)
	}

	tmpl, ok := entry[lang]
	if !ok || tmpl == "" {
		tmpl, ok = entry[DefaultLanguage]
		if !ok || tmpl == "" {
			l.logger.Warn("localization key has no usable translation", slog.String("key", key), slog.String("lang", lang))
			return fmt.Sprintf("<L10N_ERROR: %s_FOR_%s>", key, lang)
		}
	}

	for name, value := range params {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", fmt.Sprint(value))
	}
	return tmpl
}
