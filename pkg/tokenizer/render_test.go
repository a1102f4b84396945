package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderStructuralSpans(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []*Token
		expected string
	}{
		{
			"template with params",
			[]*Token{
				tok(TemplateOpenType), text("foo"),
				tok(TemplateParamSeparatorType), text("a"),
				tok(TemplateParamEqualsType), text("b"),
				tok(TemplateCloseType),
			},
			"{{foo|a=b}}",
		},
		{
			"bare external link has no brackets",
			[]*Token{
				NewExternalLinkOpenToken(false), text("http://x"), tok(ExternalLinkCloseType),
			},
			"http://x",
		},
		{
			"bracketed external link",
			[]*Token{
				NewExternalLinkOpenToken(true), text("http://x"),
				tok(ExternalLinkSeparatorType), text("y"),
				tok(ExternalLinkCloseType),
			},
			"[http://x y]",
		},
		{
			"heading level drives the runs",
			[]*Token{NewHeadingStartToken(3), text("t"), tok(HeadingEndType)},
			"===t===",
		},
		{
			"hexadecimal entity",
			[]*Token{
				tok(HTMLEntityStartType), NewHTMLEntityNumericToken(true),
				text("6b"), tok(HTMLEntityEndType),
			},
			"&#x6b;",
		},
		{
			"tag attribute pads and quote",
			[]*Token{
				NewTagOpenOpenToken(""), text("ref"),
				NewTagAttrStartToken(" ", " ", " "), text("name"),
				tok(TagAttrEqualsType), NewTagAttrQuoteToken("\""), text("v"),
				NewTagCloseOpenToken(" "),
				text("x"),
				tok(TagOpenCloseType), text("ref"), tok(TagCloseCloseType),
			},
			"<ref name = \"v\" >x</ref>",
		},
		{
			"wiki markup tag renders its markup only",
			[]*Token{
				NewTagOpenOpenToken(";"), text("dt"), tok(TagCloseSelfcloseType),
			},
			";",
		},
		{
			"style tag round-trips its ticks",
			[]*Token{
				NewTagOpenOpenToken("''"), text("i"), tok(TagCloseOpenType),
				text("x"),
				tok(TagOpenCloseType), text("i"), tok(TagCloseCloseType),
			},
			"''x''",
		},
		{
			"implicit selfclose renders a plain angle",
			[]*Token{
				NewTagOpenOpenToken(""), text("li"),
				NewTagCloseSelfcloseToken("", true),
				text("x"),
			},
			"<li>x",
		},
		{
			"explicit selfclose keeps the slash",
			[]*Token{
				NewTagOpenOpenToken(""), text("br"),
				NewTagCloseSelfcloseToken(" ", false),
			},
			"<br />",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.tokens))
		})
	}
}
