package voice

import (
	"errors"
	"testing"
)

func TestSelectVoicePrefersLanguageAndGender(t *testing.T) {
	voices := []Voice{
		{ID: "1", Name: "Ana", Language: "es", Gender: "female"},
		{ID: "2", Name: "Diego", Language: "es", Gender: "male"},
		{ID: "3", Name: "Sam", Language: "en", Gender: "male"},
	}

	selected, err := SelectVoice(voices, "es", "male")
	if err != nil {
		t.Fatalf("SelectVoice returned error: %v", err)
	}
	if selected.ID != "2" {
		t.Errorf("expected voice 2 (Spanish male), got %s (%s)", selected.ID, selected.Name)
	}
}

func TestSelectVoiceFallsBackToLanguageOnly(t *testing.T) {
	voices := []Voice{
		{ID: "1", Name: "Sam", Language: "en", Gender: "male"},
		{ID: "2", Name: "Ana", Language: "es", Gender: "female"},
	}

	selected, err := SelectVoice(voices, "es", "male")
	if err != nil {
		t.Fatalf("SelectVoice returned error: %v", err)
	}
	if selected.ID != "2" {
		t.Errorf("expected voice 2 (Spanish, any gender), got %s", selected.ID)
	}
}

func TestSelectVoiceFallsBackToFirstVoice(t *testing.T) {
	voices := []Voice{
		{ID: "1", Name: "Sam", Language: "en", Gender: "male"},
		{ID: "2", Name: "Yuki", Language: "ja", Gender: "female"},
	}

	selected, err := SelectVoice(voices, "ru", "male")
	if err != nil {
		t.Fatalf("SelectVoice returned error: %v", err)
	}
	if selected.ID != "1" {
		t.Errorf("expected first voice as last resort, got %s", selected.ID)
	}
}

func TestSelectVoiceMatchesLanguageCaseInsensitively(t *testing.T) {
	voices := []Voice{
		{ID: "1", Name: "Diego", Language: "ES", Gender: "Male"},
	}

	selected, err := SelectVoice(voices, "es", "male")
	if err != nil {
		t.Fatalf("SelectVoice returned error: %v", err)
	}
	if selected.ID != "1" {
		t.Errorf("expected case-insensitive language match, got %s", selected.ID)
	}
}

func TestSelectVoiceEmptyList(t *testing.T) {
	_, err := SelectVoice(nil, "es", "male")
	if !errors.Is(err, ErrNoVoicesAvailable) {
		t.Fatalf("expected ErrNoVoicesAvailable, got %v", err)
	}
}

// The selector must always return a member of the supplied list, in supplied
// order on ties.
func TestSelectVoiceReturnsMemberOfList(t *testing.T) {
	voices := []Voice{
		{ID: "a", Language: "es", Gender: "male"},
		{ID: "b", Language: "es", Gender: "male"},
	}

	for _, lang := range []string{"es", "fr", "ja", ""} {
		selected, err := SelectVoice(voices, lang, "male")
		if err != nil {
			t.Fatalf("SelectVoice(%q) returned error: %v", lang, err)
		}
		if selected.ID != "a" && selected.ID != "b" {
			t.Errorf("SelectVoice(%q) returned a voice outside the input list: %+v", lang, selected)
		}
		if selected.ID != "a" {
			t.Errorf("SelectVoice(%q) should pick the first qualifying voice, got %s", lang, selected.ID)
		}
	}
}
