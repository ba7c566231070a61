package delivery

import (
	"fmt"
	"strings"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	"github.com/lueurxax/content-gate-bot/internal/platform/tgtext"
)

// CatalogPageSize is the number of lines per catalog message.
const CatalogPageSize = 100

// CatalogPages renders "code. title" lines in pages of at most size lines,
// each page starting with header. A page is also closed early when the next
// line would push it past the Telegram message limit.
func CatalogPages(header string, items []domain.Content, size int) []string {
	if size <= 0 {
		size = CatalogPageSize
	}

	var (
		pages []string
		b     strings.Builder
		lines int
		units int
	)

	flush := func() {
		if lines > 0 {
			pages = append(pages, b.String())
		}

		b.Reset()
		b.WriteString(header)
		b.WriteString("\n")

		lines = 0
		units = tgtext.Len(header) + 1
	}

	flush()

	for _, c := range items {
		line := tgtext.Truncate(fmt.Sprintf(catalogLineTemplate, c.Code, c.Title), tgtext.MaxMessageLen-tgtext.Len(header)-2)
		n := tgtext.Len(line) + 1

		if lines == size || units+n > tgtext.MaxMessageLen {
			flush()
		}

		b.WriteByte('\n')
		b.WriteString(line)

		lines++
		units += n
	}

	flush()

	return pages
}

// DeepLink returns the link that opens the bot with code as the start argument.
func DeepLink(botUsername, code string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", strings.TrimPrefix(botUsername, "@"), code)
}
