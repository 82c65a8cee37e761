package services

import (
	"strings"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

// Характерные сомалийские слова и обороты
var somaliIndicators = []string{
	"waa", "ayaa", "iyo", "waxa", "maxaa", "sidee", "maaha", "haa", "maya",
	"waxaan", "waxaad", "qofka", "caafimaad", "xanuun", "dhakhtarka", "isbitaalka",
	"daawo", "buka", "caabuqa", "jirro", "calool", "madax", "dhaawac",
}

// DetectLanguage классифицирует текст по вхождению ключевых слов.
// Слово считается найденным, если оно окружено пробелами, стоит в начале
// или в конце текста, либо текст целиком равен слову.
// Слова вплотную к знакам препинания могут не совпасть — известное
// ограничение, поведение сохраняется намеренно
func DetectLanguage(text string) domain.Language {
	lowered := strings.ToLower(text)

	for _, word := range somaliIndicators {
		if strings.Contains(lowered, " "+word+" ") ||
			strings.HasPrefix(lowered, word+" ") ||
			strings.HasSuffix(lowered, " "+word) ||
			lowered == word {
			return domain.LanguageSomali
		}
	}

	return domain.LanguageEnglish
}
