package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatchAcceptLanguage(t *testing.T) {
	if got := Match("fr-FR,fr;q=0.9,en;q=0.8"); got != language.French {
		t.Fatalf("expected French, got %v", got)
	}
	if got := Match("en-US"); got != language.English {
		t.Fatalf("expected English, got %v", got)
	}
	if got := Match(""); got != language.English {
		t.Fatalf("expected English fallback, got %v", got)
	}
	if got := Match("zz-invalid"); got != language.English {
		t.Fatalf("expected English for unsupported, got %v", got)
	}
}

func TestMessageLocalizesKnownCodes(t *testing.T) {
	en := Message(language.English, "INVALID_ADMIN_PASSWORD", "fallback")
	fr := Message(language.French, "INVALID_ADMIN_PASSWORD", "fallback")
	if en == "" || fr == "" || en == fr {
		t.Fatalf("expected distinct localized messages, got %q / %q", en, fr)
	}
}

func TestMessageFallsBackForUnknownCode(t *testing.T) {
	if got := Message(language.French, "NO_SUCH_CODE", "raw message"); got != "raw message" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
