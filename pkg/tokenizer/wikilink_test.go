package tokenizer

import (
	"testing"
)

func TestWikilinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Token
	}{
		{
			"bare link",
			"[[foo]]",
			[]*Token{tok(WikilinkOpenType), text("foo"), tok(WikilinkCloseType)},
		},
		{
			"link with display text",
			"[[foo|bar]]",
			[]*Token{
				tok(WikilinkOpenType), text("foo"),
				tok(WikilinkSeparatorType), text("bar"),
				tok(WikilinkCloseType),
			},
		},
		{
			"later pipes are literal",
			"[[foo|bar|baz]]",
			[]*Token{
				tok(WikilinkOpenType), text("foo"),
				tok(WikilinkSeparatorType), text("bar|baz"),
				tok(WikilinkCloseType),
			},
		},
		{
			"template in title",
			"[[foo{{bar}}]]",
			[]*Token{
				tok(WikilinkOpenType), text("foo"),
				tok(TemplateOpenType), text("bar"), tok(TemplateCloseType),
				tok(WikilinkCloseType),
			},
		},
		{
			"nested link in display text",
			"[[a|x [[b]] y]]",
			[]*Token{
				tok(WikilinkOpenType), text("a"), tok(WikilinkSeparatorType),
				text("x "),
				tok(WikilinkOpenType), text("b"), tok(WikilinkCloseType),
				text(" y"),
				tok(WikilinkCloseType),
			},
		},
		{
			"newline in title collapses the link",
			"[[a\nb]]",
			[]*Token{text("[[a\nb]]")},
		},
		{
			"tag in title collapses the title",
			"[[foo<b>bar</b>]]",
			[]*Token{
				text("[[foo"),
				NewTagOpenOpenToken(""), text("b"), NewTagCloseOpenToken(""),
				text("bar"),
				tok(TagOpenCloseType), text("b"), tok(TagCloseCloseType),
				text("]]"),
			},
		},
		{
			"bare URL in non-file display text stays literal",
			"[[page|http://example.com]]",
			[]*Token{
				tok(WikilinkOpenType), text("page"),
				tok(WikilinkSeparatorType), text("http://example.com"),
				tok(WikilinkCloseType),
			},
		},
		{
			"bare URL in image caption becomes a link",
			"[[Image:pic.png|http://example.com]]",
			[]*Token{
				tok(WikilinkOpenType), text("Image:pic.png"),
				tok(WikilinkSeparatorType),
				NewExternalLinkOpenToken(false), text("http://example.com"), tok(ExternalLinkCloseType),
				tok(WikilinkCloseType),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}
