package quran

import "fmt"

// Language selects the display language for localized names.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// SuraName returns the display name of a sura in the given language.
// When withPrefix is true the sura number is prepended ("2. Al-Baqarah").
func SuraName(s Sura, lang Language, withPrefix bool) string {
	name := s.TransliteratedName
	if lang == LanguageArabic {
		name = s.ArabicName
	}
	if withPrefix {
		return fmt.Sprintf("%d. %s", s.Number, name)
	}
	return name
}

// JuzName returns the display name of a juz by number.
func JuzName(number int, lang Language) string {
	if lang == LanguageArabic {
		return fmt.Sprintf("الجزء %d", number)
	}
	return fmt.Sprintf("Juz' %d", number)
}

// HizbName returns the display name of a hizb by number.
func HizbName(number int, lang Language) string {
	if lang == LanguageArabic {
		return fmt.Sprintf("الحزب %d", number)
	}
	return fmt.Sprintf("Hizb %d", number)
}

// PageName returns the display name of a mushaf page by number.
func PageName(number int, lang Language) string {
	if lang == LanguageArabic {
		return fmt.Sprintf("صفحة %d", number)
	}
	return fmt.Sprintf("Page %d", number)
}

// VerseName returns the display reference of a single verse,
// e.g. "Al-Baqarah, Ayah 255".
func VerseName(s Sura, ayah int, lang Language) string {
	if lang == LanguageArabic {
		return fmt.Sprintf("%s، آية %d", s.ArabicName, ayah)
	}
	return fmt.Sprintf("%s, Ayah %d", SuraName(s, lang, false), ayah)
}
