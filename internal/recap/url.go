package recap

import (
	"net/url"
	"path"
	"strings"
)

// RecapBaseURL hosts the full recap page of every round.
const RecapBaseURL = "https://recaps.competitionsuite.com/"

// URLForRound returns the recap page URL for a round GUID.
func URLForRound(guid string) string {
	return RecapBaseURL + guid + ".htm"
}

// ResolveURL accepts either a recap URL or a bare round GUID.
func ResolveURL(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, "://") {
		return arg
	}
	return URLForRound(arg)
}

// RoundGUIDFromURL returns the last path segment of a recap URL without its
// .htm suffix: ".../abc-123.htm" yields "abc-123".
func RoundGUIDFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.TrimSuffix(path.Base(p), ".htm")
}
