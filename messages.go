package appirater

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog keys of the prompt texts.
const (
	msgTitle   = "prompt.title"
	msgMessage = "prompt.message"
	msgRate    = "prompt.rate"
	msgLater   = "prompt.later"
	msgDecline = "prompt.decline"
)

// promptLanguages lists the catalog languages, default first.
var promptLanguages = []language.Tag{language.English, language.Japanese}

var (
	promptCatalog = mustPromptCatalog()
	promptMatcher = language.NewMatcher(promptLanguages)
)

func mustPromptCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	set(language.English, msgTitle, "Rate %s")
	set(language.English, msgMessage, "If you enjoy using %s, would you mind taking a moment to rate it? It won't take more than a minute. Thanks for your support!")
	set(language.English, msgRate, "Rate %s")
	set(language.English, msgLater, "Remind me later")
	set(language.English, msgDecline, "No, Thanks")

	set(language.Japanese, msgTitle, "%sを評価")
	set(language.Japanese, msgMessage, "%sをお楽しみいただけましたら、評価をお願いします。1分もかかりません。ご協力ありがとうございます！")
	set(language.Japanese, msgRate, "%sを評価する")
	set(language.Japanese, msgLater, "後で通知する")
	set(language.Japanese, msgDecline, "いいえ、結構です")

	return b
}

// defaultPrompt returns the localized prompt texts for appName.
func defaultPrompt(tag language.Tag, appName string) Prompt {
	_, i, _ := promptMatcher.Match(tag)
	p := message.NewPrinter(promptLanguages[i], message.Catalog(promptCatalog))
	return Prompt{
		Title:         p.Sprintf(msgTitle, appName),
		Message:       p.Sprintf(msgMessage, appName),
		RateButton:    p.Sprintf(msgRate, appName),
		LaterButton:   p.Sprintf(msgLater),
		DeclineButton: p.Sprintf(msgDecline),
	}
}

// resolve fills the empty fields of p from the defaults.
func (p Prompt) resolve(def Prompt) Prompt {
	if p.Title == "" {
		p.Title = def.Title
	}
	if p.Message == "" {
		p.Message = def.Message
	}
	if p.RateButton == "" {
		p.RateButton = def.RateButton
	}
	if p.LaterButton == "" {
		p.LaterButton = def.LaterButton
	}
	if p.DeclineButton == "" {
		p.DeclineButton = def.DeclineButton
	}
	return p
}
