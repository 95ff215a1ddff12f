package query

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const previewLength = 120

// PlainText strips markup from note content. Block and void elements become
// word breaks while inline elements join their text, entities are decoded and
// runs of whitespace collapse to one space. Script and style bodies are dropped.
func PlainText(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if rawText[tag] && tt != html.SelfClosingTagToken {
				if tt == html.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
			}
			if breaking[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

var rawText = map[string]bool{"script": true, "style": true}

// breaking lists the elements whose boundaries separate words.
var breaking = map[string]bool{
	"p": true, "div": true, "br": true, "hr": true, "img": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "tr": true, "td": true, "th": true,
	"script": true, "style": true,
}

// Preview returns the first 120 characters of the plain text, with "..."
// appended when it was cut.
func Preview(content string) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:previewLength])) + "..."
}
