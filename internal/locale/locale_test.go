package locale

import "testing"

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != LangEnglish {
		t.Errorf("Expected default language 'en', got '%s'", l.GetCurrentLanguage())
	}
	if l.GetText(KeyPlay) != "PLAY" {
		t.Errorf("Expected 'PLAY', got '%s'", l.GetText(KeyPlay))
	}

	l.SetLanguage(LangSpanish)
	if l.GetText(KeyPlay) != "JUGAR" {
		t.Errorf("Expected 'JUGAR', got '%s'", l.GetText(KeyPlay))
	}

	// Unknown language keeps the current one
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != LangSpanish {
		t.Errorf("Expected language to stay 'es', got '%s'", l.GetCurrentLanguage())
	}

	if l.GetText("missing_key") != "missing_key" {
		t.Errorf("Expected key fallback, got '%s'", l.GetText("missing_key"))
	}
}

func TestLocalization_SystemLanguage(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage(LangSystem)
	if l.GetCurrentLanguage() != LangSpanish {
		t.Errorf("Expected system language to resolve to 'es', got '%s'", l.GetCurrentLanguage())
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()
	if got := l.Format(KeyPresenceDownloading, "42"); got != "Downloading... (42%)" {
		t.Errorf("Expected 'Downloading... (42%%)', got '%s'", got)
	}
}

func TestLocalization_SpanishComplete(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts[LangEnglish] {
		if _, ok := l.texts[LangSpanish][key]; !ok {
			t.Errorf("Spanish translation missing for key '%s'", key)
		}
	}
}
