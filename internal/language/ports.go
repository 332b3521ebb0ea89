package language

import "context"

// English is the pivot language: queries are matched in English and replies
// in English are returned unchanged.
const English = "English"

// Normalized is the outcome of normalizing one incoming message.
type Normalized struct {
	EnglishQuery     string `json:"english_query"`
	DetectedLanguage string `json:"detected_language"`
}

// Translator normalizes incoming text to English and localizes replies. Both
// operations always return usable text; collaborator failures are absorbed.
type Translator interface {
	Normalize(ctx context.Context, raw string) Normalized
	Localize(ctx context.Context, text, language string) string
}

// Cache stores successful normalizations.
type Cache interface {
	Get(ctx context.Context, raw string) (Normalized, bool, error)
	Set(ctx context.Context, raw string, n Normalized) error
}

// Fallback is the normalization used whenever the collaborator cannot answer.
func Fallback(raw string) Normalized {
	return Normalized{EnglishQuery: raw, DetectedLanguage: English}
}

// IsEnglish reports whether language names the pivot language.
func IsEnglish(language string) bool {
	return language == "" || equalFold(language, English)
}
