package domain

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageSomali  Language = "somali"
)
