// Package languages maps supported ISO 639-1 target language codes to the
// display names the translation prompt uses.
package languages

// Language pairs a code with its display name.
type Language struct {
	Code string
	Name string
}

var supported = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ru", Name: "Russian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
}

// Name returns the display name for a language code.
func Name(code string) (string, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l.Name, true
		}
	}
	return "", false
}

// Supported lists the selectable target languages in display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}
