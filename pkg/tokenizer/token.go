package tokenizer

// TokenType represents the different kinds of tokens.
type TokenType string

const (
	TextType TokenType = "text"

	TemplateOpenType           TokenType = "template_open"
	TemplateParamSeparatorType TokenType = "template_param_separator"
	TemplateParamEqualsType    TokenType = "template_param_equals"
	TemplateCloseType          TokenType = "template_close"

	ArgumentOpenType      TokenType = "argument_open"
	ArgumentSeparatorType TokenType = "argument_separator"
	ArgumentCloseType     TokenType = "argument_close"

	WikilinkOpenType      TokenType = "wikilink_open"
	WikilinkSeparatorType TokenType = "wikilink_separator"
	WikilinkCloseType     TokenType = "wikilink_close"

	ExternalLinkOpenType      TokenType = "external_link_open"
	ExternalLinkSeparatorType TokenType = "external_link_separator"
	ExternalLinkCloseType     TokenType = "external_link_close"

	HeadingStartType TokenType = "heading_start"
	HeadingEndType   TokenType = "heading_end"

	CommentStartType TokenType = "comment_start"
	CommentEndType   TokenType = "comment_end"

	HTMLEntityStartType   TokenType = "html_entity_start"
	HTMLEntityNumericType TokenType = "html_entity_numeric"
	HTMLEntityEndType     TokenType = "html_entity_end"

	TagOpenOpenType       TokenType = "tag_open_open"
	TagAttrStartType      TokenType = "tag_attr_start"
	TagAttrEqualsType     TokenType = "tag_attr_equals"
	TagAttrQuoteType      TokenType = "tag_attr_quote"
	TagCloseOpenType      TokenType = "tag_close_open"
	TagCloseSelfcloseType TokenType = "tag_close_selfclose"
	TagOpenCloseType      TokenType = "tag_open_close"
	TagCloseCloseType     TokenType = "tag_close_close"
)

// Token represents a single token from a wikitext document. Only the
// attributes that apply to a token's type are set; optional string
// attributes use pointers so that absence is distinct from "".
type Token struct {
	Type TokenType `json:"type"`

	// Text token field
	Text string `json:"text,omitempty"`

	// External link fields
	Brackets *bool `json:"brackets,omitempty"`

	// Heading fields
	Level *int `json:"level,omitempty"`

	// HTML entity fields
	Hexadecimal *bool `json:"hexadecimal,omitempty"`

	// Tag fields
	WikiMarkup  *string `json:"wiki_markup,omitempty"`
	PadFirst    *string `json:"pad_first,omitempty"`
	PadBeforeEq *string `json:"pad_before_eq,omitempty"`
	PadAfterEq  *string `json:"pad_after_eq,omitempty"`
	Char        *string `json:"char,omitempty"`
	Padding     *string `json:"padding,omitempty"`
	Implicit    *bool   `json:"implicit,omitempty"`
}

// NewToken creates a token that carries no attributes beyond its type.
func NewToken(tokenType TokenType) *Token {
	return &Token{Type: tokenType}
}

// NewTextToken creates a text token holding a literal run of characters.
func NewTextToken(text string) *Token {
	return &Token{Type: TextType, Text: text}
}

// NewExternalLinkOpenToken creates the opener of a bracketed or bare
// external link.
func NewExternalLinkOpenToken(brackets bool) *Token {
	return &Token{Type: ExternalLinkOpenType, Brackets: &brackets}
}

// NewHeadingStartToken creates the opener of a heading of the given level.
func NewHeadingStartToken(level int) *Token {
	return &Token{Type: HeadingStartType, Level: &level}
}

// NewHTMLEntityNumericToken creates the numeric marker of a character
// reference, decimal or hexadecimal.
func NewHTMLEntityNumericToken(hexadecimal bool) *Token {
	return &Token{Type: HTMLEntityNumericType, Hexadecimal: &hexadecimal}
}

// NewTagOpenOpenToken creates the opener of an HTML tag. wikiMarkup is the
// original markup for tags written in wiki syntax ("''", ";", "----", ...)
// and empty for tags written with angle brackets.
func NewTagOpenOpenToken(wikiMarkup string) *Token {
	token := &Token{Type: TagOpenOpenType}
	if wikiMarkup != "" {
		token.WikiMarkup = &wikiMarkup
	}
	return token
}

// NewTagAttrStartToken creates the start of a tag attribute with its three
// whitespace pads.
func NewTagAttrStartToken(padFirst, padBeforeEq, padAfterEq string) *Token {
	return &Token{
		Type:        TagAttrStartType,
		PadFirst:    &padFirst,
		PadBeforeEq: &padBeforeEq,
		PadAfterEq:  &padAfterEq,
	}
}

// NewTagAttrQuoteToken creates the quote marker wrapping an attribute value.
func NewTagAttrQuoteToken(char string) *Token {
	return &Token{Type: TagAttrQuoteType, Char: &char}
}

// NewTagCloseOpenToken creates the ">" ending the opening part of a tag,
// with the whitespace that preceded it.
func NewTagCloseOpenToken(padding string) *Token {
	return &Token{Type: TagCloseOpenType, Padding: &padding}
}

// NewTagCloseSelfcloseToken creates the "/>" of a self-closing tag. An
// implicit selfclose marks a tag that was never closed in the source and
// renders without the slash.
func NewTagCloseSelfcloseToken(padding string, implicit bool) *Token {
	return &Token{Type: TagCloseSelfcloseType, Padding: &padding, Implicit: &implicit}
}

// IsText reports whether the token is a literal text token.
func (t *Token) IsText() bool {
	return t.Type == TextType
}
