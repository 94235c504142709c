package teachers

import (
	"regexp"
	"strings"
)

// Предельное число проходов снятия префиксов: нормализация обязана
// завершаться даже на специально склеенных строках.
const maxStripPasses = 10

// Маркер дистанционного занятия в хвосте поля преподавателя.
var remoteMarker = regexp.MustCompile(`(?i)\s*\(\s*дот\s*\)\s*$`)

// Должности и учёные степени, которыми в датасете предваряют фамилию.
// Сокращения степеней вида "к.т.н."/"д.ф.-м.н." покрываются общими шаблонами.
var titlePrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^доцент\s+`),
	regexp.MustCompile(`(?i)^доц\.\s*`),
	regexp.MustCompile(`(?i)^профессор\s+`),
	regexp.MustCompile(`(?i)^проф\.\s*`),
	regexp.MustCompile(`(?i)^старший\s+преподаватель\s+`),
	regexp.MustCompile(`(?i)^ст\.\s*преп\.\s*`),
	regexp.MustCompile(`(?i)^преподаватель\s+`),
	regexp.MustCompile(`(?i)^преп\.\s*`),
	regexp.MustCompile(`(?i)^ассистент\s+`),
	regexp.MustCompile(`(?i)^асс\.\s*`),
	regexp.MustCompile(`(?i)^кандидат\s+[а-яё-]+\s+наук\s+`),
	regexp.MustCompile(`(?i)^доктор\s+[а-яё-]+\s+наук\s+`),
	regexp.MustCompile(`(?i)^[кд]\.\s*[а-яё]{1,5}\.\s*(-\s*[а-яё]{1,5}\.\s*)?н\.\s*`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize приводит сырое поле преподавателя к каноническому имени:
// снимает хвостовой маркер ДОТ, последовательно срезает должности и степени,
// схлопывает пробелы. Идемпотентна.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	s = remoteMarker.ReplaceAllString(s, "")

	for pass := 0; pass < maxStripPasses; pass++ {
		stripped := false
		for _, prefix := range titlePrefixes {
			if loc := prefix.FindStringIndex(s); loc != nil && loc[0] == 0 {
				s = s[loc[1]:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
