package translation

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

const defaultDomain = "default"

// Configure loads the catalogue for lang from localesDir. Languages without a
// catalogue fall back to the untranslated English source strings.
func Configure(localesDir, lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		lang = "en"
	}
	gotext.Configure(localesDir, lang, defaultDomain)
}

func GetLanguage() string {
	lang := gotext.GetLanguage()

	if lang == "und" || lang == "" {
		return "en"
	}

	return lang
}

func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
