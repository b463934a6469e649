package translation

import (
	"sort"

	"horse.fit/bookstore/internal/language"
)

// LanguageOption is one selectable target language for API consumers.
type LanguageOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var translationLanguageLabels = map[string]string{
	"ar": "Arabic",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"ga": "Irish",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"sv": "Swedish",
	"tr": "Turkish",
	"zh": "Chinese",
}

func SupportedTranslationLanguageCodes() []string {
	codes := make([]string, 0, len(translationLanguageLabels))
	for code := range translationLanguageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// TranslationLanguageOptions lists the languages the default provider accepts,
// labeled for display.
func TranslationLanguageOptions(registry *Registry) []LanguageOption {
	supported := map[string]struct{}{}
	if registry != nil {
		if provider, err := registry.Provider(""); err == nil {
			for _, code := range provider.SupportedLanguages() {
				normalized := language.NormalizeCode(code)
				if normalized != "" {
					supported[normalized] = struct{}{}
				}
			}
		}
	}
	if len(supported) == 0 {
		for _, code := range SupportedTranslationLanguageCodes() {
			supported[code] = struct{}{}
		}
	}

	options := make([]LanguageOption, 0, len(supported))
	for code := range supported {
		label, ok := translationLanguageLabels[code]
		if !ok {
			label = code
		}
		options = append(options, LanguageOption{Code: code, Label: label})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Code < options[j].Code })
	return options
}
