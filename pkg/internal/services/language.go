package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var languageCandidates = map[string]lingua.Language{
	"en": lingua.English,
	"ru": lingua.Russian,
	"de": lingua.German,
	"fr": lingua.French,
	"es": lingua.Spanish,
	"it": lingua.Italian,
	"uk": lingua.Ukrainian,
	"zh": lingua.Chinese,
	"ja": lingua.Japanese,
}

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func buildLanguageDetector() {
	codes := viper.GetStringSlice("language.candidates")
	if len(codes) == 0 {
		codes = []string{"en", "ru"}
	}

	var languages []lingua.Language
	for _, code := range codes {
		if language, ok := languageCandidates[strings.ToLower(code)]; ok {
			languages = append(languages, language)
		}
	}
	if len(languages) < 2 {
		log.Warn().Strs("candidates", codes).Msg("Language detection needs at least two known languages, disabled.")
		return
	}

	languageDetector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()
}

// DetectLanguage returns the ISO 639-1 code of the content, or an empty
// string when detection is disabled or not confident.
func DetectLanguage(content string) string {
	if viper.IsSet("language.detect") && !viper.GetBool("language.detect") {
		return ""
	}
	if len(strings.TrimSpace(content)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(buildLanguageDetector)
	if languageDetector == nil {
		return ""
	}

	detected, ok := languageDetector.DetectLanguageOf(content)
	if !ok {
		return ""
	}
	for code, language := range languageCandidates {
		if language == detected {
			return code
		}
	}
	return ""
}
