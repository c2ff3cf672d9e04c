package localization

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLocalizer() *Localizer {
	return New(slog.Default())
}

func TestText_ParamSubstitution(t *testing.T) {
	loc := newTestLocalizer()

	got := loc.Text("location_received_text", "en", map[string]any{"location_text": "Porto"})
	assert.Contains(t, got, "Porto")
	assert.NotContains(t, got, "{location_text}")
}

func TestText_UnknownLanguageFallsBackToDefault(t *testing.T) {
	loc := newTestLocalizer()

	got := loc.Text("start_planning_prompt", "de", nil)
	want := loc.Text("start_planning_prompt", DefaultLanguage, nil)
	assert.Equal(t, want, got)
}

func TestText_MissingKeyReturnsMarker(t *testing.T) {
	loc := newTestLocalizer()

	got := loc.Text("no_such_key", "en", nil)
	assert.Equal(t, "<L10N_ERROR: no_such_key_FOR_en>", got)
}

func TestCatalog_AllLanguagesCoverAllKeys(t *testing.T) {
	for key, entry := range catalog {
		for _, lang := range SupportedLanguages {
			tmpl, ok := entry[lang]
			assert.Truef(t, ok, "key %q missing language %q", key, lang)
			assert.NotEmptyf(t, tmpl, "key %q has empty template for %q", key, lang)
		}
	}
}

func TestCatalog_PlaceholdersMatchAcrossLanguages(t *testing.T) {
	for key, entry := range catalog {
		base := placeholders(entry[DefaultLanguage])
		for _, lang := range SupportedLanguages {
			assert.ElementsMatchf(t, base, placeholders(entry[lang]),
				"key %q placeholder mismatch for %q", key, lang)
		}
	}
}

func placeholders(tmpl string) []string {
	var out []string
	for {
		start := strings.Index(tmpl, "{")
		if start < 0 {
			return out
		}
		end := strings.Index(tmpl[start:], "}")
		if end < 0 {
			return out
		}
		out = append(out, tmpl[start:start+end+1])
		tmpl = tmpl[start+end+1:]
	}
}
