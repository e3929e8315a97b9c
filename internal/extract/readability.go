package extract

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog/log"
)

// Readable runs a readability pass over the raw page and returns the
// simplified article HTML, or "" when the page has no recoverable article
// content. Failures are logged and swallowed; this is a best-effort
// enhancement, never a required step.
func Readable(rawHTML, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("readability: unparseable URL")
		u = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		log.Debug().Err(err).Msg("readability extraction failed")
		return ""
	}
	return strings.TrimSpace(article.Content)
}
