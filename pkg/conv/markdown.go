package conv

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()

	// Telegram has no list or paragraph tags, so they become plain text layout.
	blockRewriter = strings.NewReplacer(
		"<li>", "• ",
		"</li>", "",
		"<ul>", "",
		"</ul>", "",
		"<ol>", "",
		"</ol>", "",
		"<p>", "",
		"</p>", "\n",
	)
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToTelegramHTML renders a reply for Telegram's HTML parse mode.
func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := string(markdown.Render(p.Parse(md), renderer))

	laidOut := blockRewriter.Replace(unsafeHTML)
	sanitized := tgPolicy.Sanitize(laidOut)

	return strings.TrimSpace(extraBlankLines.ReplaceAllString(sanitized, "\n\n"))
}
