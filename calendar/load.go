package calendar

import (
	"encoding/json"
	"os"
	"time"
)

// Дата начала семестра, если файл конфигурации отсутствует или битый.
const defaultSemesterStart = "2025-09-01"

var dateLayouts = []string{"2006-01-02", "02.01.2006"}

type configFile struct {
	SemesterStart string `json:"semester_start"`
}

// Load читает дату начала семестра из JSON-файла.
// Отсутствующий или нечитаемый файл не считается ошибкой запуска:
// используется дата по умолчанию.
func Load(path string) Calendar {
	fallback, _ := time.Parse("2006-01-02", defaultSemesterStart)

	data, err := os.ReadFile(path)
	if err != nil {
		return New(fallback)
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return New(fallback)
	}

	for _, layout := range dateLayouts {
		if start, err := time.Parse(layout, cfg.SemesterStart); err == nil {
			return New(start)
		}
	}

	return New(fallback)
}
