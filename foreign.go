package socialtext

import (
	"net/url"
	"strings"
)

// ForeignService describes a network whose users can be mentioned as
// user@code. LinkTpl is a URL template where {} is replaced with the user name.
type ForeignService struct {
	Title      string   `json:"title" yaml:"title"`
	LinkTpl    string   `json:"linkTpl" yaml:"linkTpl"`
	ShortCodes []string `json:"shortCodes" yaml:"shortCodes"`
}

// DefaultForeignServices returns the built-in services. The result is a fresh
// slice and may be modified by the caller.
func DefaultForeignServices() []ForeignService {
	return []ForeignService{
		{Title: "Facebook", LinkTpl: "https://www.facebook.com/{}", ShortCodes: []string{"fb", "facebook"}},
		{Title: "FreeFeed", LinkTpl: "https://freefeed.net/{}", ShortCodes: []string{"freefeed"}},
		{Title: "GitHub", LinkTpl: "https://github.com/{}", ShortCodes: []string{"github"}},
		{Title: "Instagram", LinkTpl: "https://www.instagram.com/{}/", ShortCodes: []string{"ig", "instagram"}},
		{Title: "LiveJournal", LinkTpl: "https://users.livejournal.com/{}/", ShortCodes: []string{"lj", "livejournal"}},
		{Title: "Mokum", LinkTpl: "https://mokum.place/{}", ShortCodes: []string{"mokum"}},
		{Title: "Telegram", LinkTpl: "https://t.me/{}", ShortCodes: []string{"tg", "telegram"}},
		{Title: "Twitter", LinkTpl: "https://twitter.com/{}", ShortCodes: []string{"twitter"}},
	}
}

// ForeignMention splits a FOREIGN_MENTION token into the user name and the
// service short code as written.
func ForeignMention(tok Token) (user, code string, ok bool) {
	if tok.Kind != KindForeignMention {
		return "", "", false
	}
	user, code, ok = strings.Cut(tok.Text, "@")
	if !ok || user == "" || code == "" {
		return "", "", false
	}
	return user, code, true
}

// ForeignMentionURL resolves a FOREIGN_MENTION token to the profile URL on its
// service. It reports false for other token kinds and unknown short codes.
func ForeignMentionURL(tok Token, services []ForeignService) (string, bool) {
	user, code, ok := ForeignMention(tok)
	if !ok {
		return "", false
	}
	svc, ok := findService(services, code)
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(svc.LinkTpl, "{}", url.PathEscape(user)), true
}

func findService(services []ForeignService, code string) (ForeignService, bool) {
	for _, svc := range services {
		for _, c := range svc.ShortCodes {
			if strings.EqualFold(c, code) {
				return svc, true
			}
		}
	}
	return ForeignService{}, false
}
