package i18n

import (
	"github.com/christineastoria/custom-slide-annotation/config"
)

// SyncLanguageFromConfig applies the configured language. Unknown values
// select English.
func SyncLanguageFromConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	SetLanguage(ParseLanguage(cfg.Language))
}

// ParseLanguage converts a string to Language type
func ParseLanguage(langStr string) Language {
	switch langStr {
	case "简体中文", "zh", "zh-CN":
		return Chinese
	default:
		return English
	}
}
