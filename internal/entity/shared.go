package entity

import "strings"

// Language represents supported language codes using ISO-style abbreviations.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageEnglish     Language = "en"
	LanguageChinese     Language = "zh"
	LanguageSpanish     Language = "es"
	LanguageFrench      Language = "fr"
	LanguageJapanese    Language = "ja"
	LanguageKorean      Language = "ko"
)

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// NormalizeLanguage ensures the language falls back to a supported value (defaults to English).
func NormalizeLanguage(lang Language) Language {
	switch lang {
	case LanguageEnglish, LanguageChinese, LanguageSpanish, LanguageFrench, LanguageJapanese, LanguageKorean:
		return lang
	default:
		return LanguageEnglish
	}
}

// PracticeMode identifies one of the Callan drilling modes.
type PracticeMode string

const (
	ModeQA        PracticeMode = "qa"
	ModeShadowing PracticeMode = "shadowing"
	ModeDictation PracticeMode = "dictation"
)

// PracticeModes lists the supported modes in presentation order.
var PracticeModes = []PracticeMode{ModeQA, ModeShadowing, ModeDictation}

// ParsePracticeMode converts an arbitrary string into a supported mode.
// Unknown values map to the empty mode so callers can reject them.
func ParsePracticeMode(raw string) PracticeMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "qa":
		return ModeQA
	case "shadowing":
		return ModeShadowing
	case "dictation":
		return ModeDictation
	default:
		return ""
	}
}

// Valid reports whether the mode is one of the three drilling modes.
func (m PracticeMode) Valid() bool {
	return m == ModeQA || m == ModeShadowing || m == ModeDictation
}

// NormalizeTerm lowercases and trims a vocabulary term for uniqueness checks.
func NormalizeTerm(term string) string {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
