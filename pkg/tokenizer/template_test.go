package tokenizer

import (
	"testing"
)

func TestTemplates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Token
	}{
		{
			"bare template",
			"{{foo}}",
			[]*Token{tok(TemplateOpenType), text("foo"), tok(TemplateCloseType)},
		},
		{
			"positional and named params",
			"{{foo|bar|baz=qux}}",
			[]*Token{
				tok(TemplateOpenType), text("foo"),
				tok(TemplateParamSeparatorType), text("bar"),
				tok(TemplateParamSeparatorType), text("baz"),
				tok(TemplateParamEqualsType), text("qux"),
				tok(TemplateCloseType),
			},
		},
		{
			"only the first equals splits a param",
			"{{foo|a=b=c}}",
			[]*Token{
				tok(TemplateOpenType), text("foo"),
				tok(TemplateParamSeparatorType), text("a"),
				tok(TemplateParamEqualsType), text("b=c"),
				tok(TemplateCloseType),
			},
		},
		{
			"nested template in value",
			"{{foo|bar={{baz}}}}",
			[]*Token{
				tok(TemplateOpenType), text("foo"),
				tok(TemplateParamSeparatorType), text("bar"),
				tok(TemplateParamEqualsType),
				tok(TemplateOpenType), text("baz"), tok(TemplateCloseType),
				tok(TemplateCloseType),
			},
		},
		{
			"template in name keeps the template valid",
			"{{foo{{bar}}}}",
			[]*Token{
				tok(TemplateOpenType), text("foo"),
				tok(TemplateOpenType), text("bar"), tok(TemplateCloseType),
				tok(TemplateCloseType),
			},
		},
		{
			"newline then params is allowed before text",
			"{{\nfoo}}",
			[]*Token{tok(TemplateOpenType), text("\nfoo"), tok(TemplateCloseType)},
		},
		{
			"newline after text kills the name",
			"{{foo\nbar}}",
			[]*Token{text("{{foo\nbar}}")},
		},
		{
			"comment after newline keeps the name",
			"{{foo\n<!-- ok -->}}",
			[]*Token{
				tok(TemplateOpenType), text("foo\n"),
				tok(CommentStartType), text(" ok "), tok(CommentEndType),
				tok(TemplateCloseType),
			},
		},
		{
			"stray angle after newline kills the name",
			"{{foo\n<!}}",
			[]*Token{text("{{foo\n<!}}")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}

func TestArguments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Token
	}{
		{
			"bare argument",
			"{{{x}}}",
			[]*Token{tok(ArgumentOpenType), text("x"), tok(ArgumentCloseType)},
		},
		{
			"argument with default",
			"{{{x|default}}}",
			[]*Token{
				tok(ArgumentOpenType), text("x"),
				tok(ArgumentSeparatorType), text("default"),
				tok(ArgumentCloseType),
			},
		},
		{
			"only the first pipe separates",
			"{{{x|a|b}}}",
			[]*Token{
				tok(ArgumentOpenType), text("x"),
				tok(ArgumentSeparatorType), text("a|b"),
				tok(ArgumentCloseType),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}

func TestBraceRuns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Token
	}{
		{
			"four braces: literal brace around argument",
			"{{{{x}}}}",
			[]*Token{
				text("{"),
				tok(ArgumentOpenType), text("x"), tok(ArgumentCloseType),
				text("}"),
			},
		},
		{
			"five braces: template wrapping argument",
			"{{{{{x}}}}}",
			[]*Token{
				tok(TemplateOpenType),
				tok(ArgumentOpenType), text("x"), tok(ArgumentCloseType),
				tok(TemplateCloseType),
			},
		},
		{
			"six braces stack as arguments",
			"{{{{{{x}}}}}}",
			[]*Token{
				tok(ArgumentOpenType),
				tok(ArgumentOpenType), text("x"), tok(ArgumentCloseType),
				tok(ArgumentCloseType),
			},
		},
		{
			"argument next to template",
			"{{{a}}}{{b}}",
			[]*Token{
				tok(ArgumentOpenType), text("a"), tok(ArgumentCloseType),
				tok(TemplateOpenType), text("b"), tok(TemplateCloseType),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}
