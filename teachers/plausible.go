package teachers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Минимальная длина кандидата без точки: короткие обрывки без инициалов
// почти всегда оказываются мусором из соседних полей.
const minBareNameLength = 8

var (
	roomCodePrefix  = regexp.MustCompile(`^\d+-\d+`)
	clockTime       = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	digitsAndDashes = regexp.MustCompile(`^[\d\s\-–]+$`)

	// Название предмета с пометкой вида занятия в скобках ближе к концу строки:
	// "Литература (лк)" — это не имя.
	lessonTypeTail = regexp.MustCompile(`(?i)\(\s*(лк|лек|лаб|пр|практ|сем|кср|конс|зач|экз)\.?\s*\)\s*\.?\s*$`)
)

// IsPlausibleName отсекает фрагменты, которые явно не являются именем:
// коды аудиторий, время пар, пометки вида занятия и цифровой шум.
func IsPlausibleName(candidate string) bool {
	s := strings.TrimSpace(candidate)

	if utf8.RuneCountInString(s) < 3 {
		return false
	}
	if !containsFunc(s, unicode.IsLetter) {
		return false
	}
	if roomCodePrefix.MatchString(s) {
		return false
	}
	if clockTime.MatchString(s) {
		return false
	}
	if digitsAndDashes.MatchString(s) {
		return false
	}
	if lessonTypeTail.MatchString(s) {
		return false
	}
	if !containsFunc(s, unicode.IsUpper) {
		return false
	}
	if !strings.Contains(s, ".") && utf8.RuneCountInString(s) < minBareNameLength {
		return false
	}

	return true
}

func containsFunc(s string, match func(rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}
