package socialtext

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/alnah/go-socialtext/internal/assets"
)

// defaultNoPreviewHosts lists sites whose links never get a preview.
var defaultNoPreviewHosts = assets.MustLoadList(assets.ListNoPreview)

// Platform identifies a site with a dedicated preview renderer.
type Platform uint8

const (
	PlatformNone Platform = iota
	PlatformVideo
	PlatformTwitter
	PlatformInstagram
	PlatformGoogleDocs
	PlatformYandexMusic
	PlatformWikipedia
	PlatformTelegram
	PlatformTikTok
	PlatformSoundCloud
	PlatformSpotify
	PlatformAppleMusic

	platformCount
)

var platformNames = [...]string{
	PlatformNone:        "none",
	PlatformVideo:       "video",
	PlatformTwitter:     "twitter",
	PlatformInstagram:   "instagram",
	PlatformGoogleDocs:  "google-docs",
	PlatformYandexMusic: "yandex-music",
	PlatformWikipedia:   "wikipedia",
	PlatformTelegram:    "telegram",
	PlatformTikTok:      "tiktok",
	PlatformSoundCloud:  "soundcloud",
	PlatformSpotify:     "spotify",
	PlatformAppleMusic:  "apple-music",
}

// String returns the lower-case platform name.
func (p Platform) String() string {
	if p < platformCount {
		return platformNames[p]
	}
	return fmt.Sprintf("Platform(%d)", uint8(p))
}

// MarshalText encodes the platform as its name.
func (p Platform) MarshalText() ([]byte, error) {
	if p >= platformCount {
		return nil, fmt.Errorf("socialtext: unknown platform %d", uint8(p))
	}
	return []byte(platformNames[p]), nil
}

// Platform URL patterns, tried in order by ClassifyURL.
var (
	tweetPattern = regexp.MustCompile(`(?i)^https?://(?:twitter|x)\.com/[^/]+/status/(\d+)`)

	platformPatterns = []struct {
		platform Platform
		patterns []*regexp.Regexp
	}{
		{PlatformVideo, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(?:www\.|m\.)?youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/)[\w-]+`),
			regexp.MustCompile(`(?i)^https?://youtu\.be/[\w-]+`),
			regexp.MustCompile(`(?i)^https?://(?:www\.)?vimeo\.com/(?:channels/[^/]+/)?\d+`),
			regexp.MustCompile(`(?i)^https?://coub\.com/view/\w+`),
			regexp.MustCompile(`(?i)^https?://i\.imgur\.com/\w+\.(?:gifv|mp4)`),
		}},
		{PlatformTwitter, []*regexp.Regexp{tweetPattern}},
		{PlatformInstagram, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(?:www\.)?instagram\.com/(?:[^/]+/)?(?:p|reel|tv)/[\w-]+`),
		}},
		{PlatformGoogleDocs, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(?:docs|drive)\.google\.com/`),
		}},
		{PlatformYandexMusic, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://music\.yandex\.(?:ru|com|by|kz|ua)/(?:album|users)/`),
		}},
		{PlatformWikipedia, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://[\w-]+\.(?:m\.)?wikipedia\.org/wiki/[^?#]+`),
		}},
		{PlatformTelegram, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://t\.me/(?:s/)?\w+/\d+`),
		}},
		{PlatformTikTok, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(?:www\.|vm\.|m\.)?tiktok\.com/`),
		}},
		{PlatformSoundCloud, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(?:www\.|m\.)?soundcloud\.com/[^/?#]+/[^/?#]+`),
		}},
		{PlatformSpotify, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://open\.spotify\.com/(?:intl-\w+/)?(?:track|album|playlist|episode|show|artist)/\w+`),
		}},
		{PlatformAppleMusic, []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(?:embed\.)?music\.apple\.com/`),
		}},
	}
)

// ClassifyURL returns the first platform whose URL pattern matches rawURL,
// or PlatformNone.
func ClassifyURL(rawURL string) Platform {
	for _, entry := range platformPatterns {
		for _, re := range entry.patterns {
			if re.MatchString(rawURL) {
				return entry.platform
			}
		}
	}
	return PlatformNone
}

// TweetID extracts the status id from a Twitter or X status URL.
func TweetID(rawURL string) (string, bool) {
	m := tweetPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NoPreviewForURL reports whether rawURL is an https URL on a site that must
// not be previewed, or on any subdomain of one.
func NoPreviewForURL(rawURL string) bool {
	return noPreviewFor(rawURL, defaultNoPreviewHosts)
}

// NoPreviewHosts returns the built-in list of sites excluded from previews.
func NoPreviewHosts() []string {
	hosts := make([]string, len(defaultNoPreviewHosts))
	copy(hosts, defaultNoPreviewHosts)
	return hosts
}

func noPreviewFor(rawURL string, hosts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(u.Scheme, "https") {
		return false
	}
	host := foldHost(u.Hostname())
	if host == "" {
		return false
	}
	for _, h := range hosts {
		h = foldHost(h)
		if h != "" && (host == h || strings.HasSuffix(host, "."+h)) {
			return true
		}
	}
	return false
}
