package tokenizer

import (
	"testing"
)

func TestBareExternalLinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Token
	}{
		{
			"plain bare link",
			"http://example.com",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com"), tok(ExternalLinkCloseType),
			},
		},
		{
			"surrounding text",
			"see http://example.com now",
			[]*Token{
				text("see "),
				NewExternalLinkOpenToken(false), text("http://example.com"), tok(ExternalLinkCloseType),
				text(" now"),
			},
		},
		{
			"trailing punctuation is trimmed",
			"http://example.com.",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com"), tok(ExternalLinkCloseType),
				text("."),
			},
		},
		{
			"inner punctuation is kept",
			"http://example.com/a.b",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com/a.b"), tok(ExternalLinkCloseType),
			},
		},
		{
			"multiple trailing punctuation characters",
			"http://example.com/x.;!",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com/x"), tok(ExternalLinkCloseType),
				text(".;!"),
			},
		},
		{
			"closing paren counts once a paren was opened",
			"http://en.org/foo_(bar)",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://en.org/foo_(bar)"), tok(ExternalLinkCloseType),
			},
		},
		{
			"closing paren without opening is trimmed",
			"http://example.com/x)",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com/x"), tok(ExternalLinkCloseType),
				text(")"),
			},
		},
		{
			"scheme without required slashes stays literal",
			"http:example",
			[]*Token{text("http:example")},
		},
		{
			"slashless scheme works bare",
			"mailto:me@example.com",
			[]*Token{
				NewExternalLinkOpenToken(false), text("mailto:me@example.com"), tok(ExternalLinkCloseType),
			},
		},
		{
			"unknown scheme stays literal",
			"nothttp://example.com",
			[]*Token{text("nothttp://example.com")},
		},
		{
			"scheme glued to text stays literal",
			"xhttp://example.com",
			[]*Token{text("xhttp://example.com")},
		},
		{
			"scheme match is case-insensitive",
			"HTTP://example.com",
			[]*Token{
				NewExternalLinkOpenToken(false), text("HTTP://example.com"), tok(ExternalLinkCloseType),
			},
		},
		{
			"template inside a URL",
			"http://example.com/{{foo}}/bar",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com/"),
				tok(TemplateOpenType), text("foo"), tok(TemplateCloseType),
				text("/bar"),
				tok(ExternalLinkCloseType),
			},
		},
		{
			"punctuation before a template is kept",
			"http://example.com/foo.{{bar}}",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://example.com/foo."),
				tok(TemplateOpenType), text("bar"), tok(TemplateCloseType),
				tok(ExternalLinkCloseType),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}

func TestBracketedExternalLinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Token
	}{
		{
			"url only",
			"[http://example.com]",
			[]*Token{
				NewExternalLinkOpenToken(true), text("http://example.com"), tok(ExternalLinkCloseType),
			},
		},
		{
			"url with title",
			"[http://example.com some text]",
			[]*Token{
				NewExternalLinkOpenToken(true), text("http://example.com"),
				tok(ExternalLinkSeparatorType), text("some text"),
				tok(ExternalLinkCloseType),
			},
		},
		{
			"unknown scheme keeps the bracket literal",
			"[malito:example]",
			[]*Token{text("[malito:example]")},
		},
		{
			"unclosed bracket falls back to a bare link",
			"[http://x",
			[]*Token{
				text("["),
				NewExternalLinkOpenToken(false), text("http://x"), tok(ExternalLinkCloseType),
			},
		},
		{
			"empty url fails",
			"[http://]",
			[]*Token{text("[http://]")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}
