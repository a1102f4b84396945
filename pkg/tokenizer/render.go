package tokenizer

import (
	"strings"
)

// renderTag tracks the open tag whose pieces are being rendered.
type renderTag struct {
	wikiMarkup   string
	pendingQuote string
	padBeforeEq  string
	padAfterEq   string
	skipNextText bool
}

// Render reconstructs the exact source span of a token stream. For every
// valid UTF-8 input s, Render(Tokenize(s)) == s.
func Render(tokens []*Token) string {
	var b strings.Builder
	var brackets []bool
	var headings []int
	var tags []*renderTag

	top := func() *renderTag {
		if len(tags) == 0 {
			return nil
		}
		return tags[len(tags)-1]
	}
	flushQuote := func() {
		if tag := top(); tag != nil && tag.pendingQuote != "" {
			b.WriteString(tag.pendingQuote)
			tag.pendingQuote = ""
		}
	}

	for _, token := range tokens {
		switch token.Type {
		case TextType:
			if tag := top(); tag != nil && tag.skipNextText {
				tag.skipNextText = false
				continue
			}
			b.WriteString(token.Text)
		case TemplateOpenType:
			b.WriteString("{{")
		case TemplateCloseType:
			b.WriteString("}}")
		case TemplateParamSeparatorType, ArgumentSeparatorType, WikilinkSeparatorType:
			b.WriteString("|")
		case TemplateParamEqualsType:
			b.WriteString("=")
		case ArgumentOpenType:
			b.WriteString("{{{")
		case ArgumentCloseType:
			b.WriteString("}}}")
		case WikilinkOpenType:
			b.WriteString("[[")
		case WikilinkCloseType:
			b.WriteString("]]")
		case ExternalLinkOpenType:
			withBrackets := token.Brackets != nil && *token.Brackets
			brackets = append(brackets, withBrackets)
			if withBrackets {
				b.WriteString("[")
			}
		case ExternalLinkSeparatorType:
			b.WriteString(" ")
		case ExternalLinkCloseType:
			if n := len(brackets); n > 0 {
				if brackets[n-1] {
					b.WriteString("]")
				}
				brackets = brackets[:n-1]
			}
		case HeadingStartType:
			level := 1
			if token.Level != nil {
				level = *token.Level
			}
			headings = append(headings, level)
			b.WriteString(strings.Repeat("=", level))
		case HeadingEndType:
			if n := len(headings); n > 0 {
				b.WriteString(strings.Repeat("=", headings[n-1]))
				headings = headings[:n-1]
			}
		case CommentStartType:
			b.WriteString("<!--")
		case CommentEndType:
			b.WriteString("-->")
		case HTMLEntityStartType:
			b.WriteString("&")
		case HTMLEntityNumericType:
			b.WriteString("#")
			if token.Hexadecimal != nil && *token.Hexadecimal {
				b.WriteString("x")
			}
		case HTMLEntityEndType:
			b.WriteString(";")
		case TagOpenOpenType:
			tag := &renderTag{}
			if token.WikiMarkup != nil {
				tag.wikiMarkup = *token.WikiMarkup
				tag.skipNextText = true
				b.WriteString(tag.wikiMarkup)
			} else {
				b.WriteString("<")
			}
			tags = append(tags, tag)
		case TagAttrStartType:
			flushQuote()
			if tag := top(); tag != nil {
				tag.padBeforeEq = stringValue(token.PadBeforeEq)
				tag.padAfterEq = stringValue(token.PadAfterEq)
			}
			b.WriteString(stringValue(token.PadFirst))
		case TagAttrEqualsType:
			if tag := top(); tag != nil {
				b.WriteString(tag.padBeforeEq)
				b.WriteString("=")
				b.WriteString(tag.padAfterEq)
			}
		case TagAttrQuoteType:
			quote := stringValue(token.Char)
			b.WriteString(quote)
			if tag := top(); tag != nil {
				tag.pendingQuote = quote
			}
		case TagCloseOpenType:
			flushQuote()
			if tag := top(); tag != nil && tag.wikiMarkup == "" {
				b.WriteString(stringValue(token.Padding))
				b.WriteString(">")
			}
		case TagCloseSelfcloseType:
			flushQuote()
			tag := top()
			if tag != nil && tag.wikiMarkup == "" {
				b.WriteString(stringValue(token.Padding))
				if token.Implicit != nil && *token.Implicit {
					b.WriteString(">")
				} else {
					b.WriteString("/>")
				}
			}
			if len(tags) > 0 {
				tags = tags[:len(tags)-1]
			}
		case TagOpenCloseType:
			if tag := top(); tag != nil && tag.wikiMarkup != "" {
				tag.skipNextText = true
			} else {
				b.WriteString("</")
			}
		case TagCloseCloseType:
			if tag := top(); tag != nil && tag.wikiMarkup != "" {
				b.WriteString(tag.wikiMarkup)
			} else {
				b.WriteString(">")
			}
			if len(tags) > 0 {
				tags = tags[:len(tags)-1]
			}
		}
	}
	return b.String()
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
