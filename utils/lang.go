package utils

import (
	"embed"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed locales/*.yaml
var locales embed.FS

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
)

// InitI18NBundle loads the embedded message files. Files found in `i18n.dir`
// override embedded messages with the same id.
func InitI18NBundle() {
	bundleOnce.Do(loadBundle)
}

func loadBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, name := range []string{"en.yaml", "tr.yaml"} {
		buf, err := locales.ReadFile(path.Join("locales", name))
		if err != nil {
			panic(err)
		}
		if _, err := bundle.ParseMessageFileBytes(buf, name); err != nil {
			panic(err)
		}

		if dir := viper.GetString("i18n.dir"); dir != "" {
			// overrides are optional
			_, _ = bundle.LoadMessageFile(path.Join(dir, name))
		}
	}
}

func NewLocalizer(lang string) *i18n.Localizer {
	InitI18NBundle()
	return i18n.NewLocalizer(bundle, lang)
}

// Localize renders a message for lang. Unknown ids render as the id itself so
// a missing translation never breaks a user reply.
func Localize(lang, messageID string, data map[string]interface{}) string {
	msg, err := NewLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
