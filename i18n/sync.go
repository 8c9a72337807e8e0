package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"slidecomposer/config"
)

var supported = []language.Tag{language.English, language.SimplifiedChinese}

var matcher = language.NewMatcher(supported)

// SyncLanguageFromConfig synchronizes language setting from application config
func SyncLanguageFromConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	SetLanguage(ParseLanguage(cfg.Language))
}

// ParseLanguage converts a display name ("English", "简体中文") or a BCP 47
// tag ("en", "zh-CN") to a Language. Anything unrecognised is English.
func ParseLanguage(langStr string) Language {
	s := strings.TrimSpace(langStr)
	switch s {
	case string(Chinese):
		return Chinese
	case string(English), "":
		return English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || supported[idx] != language.SimplifiedChinese {
		return English
	}
	return Chinese
}

// Code returns the language's BCP 47 tag.
func (l Language) Code() string {
	if l == Chinese {
		return language.SimplifiedChinese.String()
	}
	return language.English.String()
}
