package tokenizer

import (
	"errors"
	"strings"
)

// singleOnlyTags never take a closing tag; their opener is implicitly
// self-closing.
var singleOnlyTags = map[string]bool{
	"br": true, "hr": true, "img": true, "link": true, "meta": true, "wbr": true,
}

// singleTags may appear without a closing tag; an unclosed body ends the
// tag implicitly at end of input.
var singleTags = map[string]bool{
	"br": true, "dd": true, "dt": true, "hr": true, "img": true, "li": true,
	"link": true, "meta": true, "td": true, "th": true, "tr": true, "wbr": true,
}

// listTagNames maps wiki list markers to the HTML tags they stand for.
var listTagNames = map[rune]string{
	';': "dt",
	':': "dd",
	'*': "li",
	'#': "li",
}

// parseTag recognizes an HTML tag at "<". Inside a template name or
// wikilink title any tag invalidates the enclosing construct; elsewhere a
// malformed tag leaves the "<" as literal text.
func (t *Tokenizer) parseTag() error {
	if t.context()&ctxNoTags != 0 {
		return errBadRoute
	}
	reset := t.head
	t.head++
	err := t.reallyParseTag()
	if errors.Is(err, errBadRoute) {
		t.head = reset
		t.emitText("<")
		t.head++
		return nil
	}
	return err
}

// reallyParseTag parses the tag name, attributes, and body in a single
// frame so that an implicit close can rewrite the open tag in place.
func (t *Tokenizer) reallyParseTag() error {
	t.push(ctxTagOpen)
	var name []rune
	for isTagNameChar(t.read(0)) {
		name = append(name, t.read(0))
		t.head++
	}
	if len(name) == 0 {
		return t.fail()
	}
	t.emit(NewTagOpenOpenToken(""))
	t.emitText(string(name))
	tagName := strings.ToLower(string(name))

	pad := ""
	for {
		pad += t.collectTagWhitespace()
		this := t.read(0)
		switch {
		case this == eof:
			return t.fail()
		case this == '>':
			t.head++
			if singleOnlyTags[tagName] {
				t.emit(NewTagCloseSelfcloseToken(pad, true))
				t.emitAll(t.pop())
				return nil
			}
			t.emit(NewTagCloseOpenToken(pad))
			f := t.top()
			f.context = ctxTagBody
			f.tagName = tagName
			stack, err := t.parse(0, false)
			if err != nil {
				return err
			}
			t.emitAll(stack)
			return nil
		case this == '/' && t.read(1) == '>':
			t.head += 2
			t.emit(NewTagCloseSelfcloseToken(pad, false))
			t.emitAll(t.pop())
			return nil
		case isAttrNameChar(this):
			var err error
			pad, err = t.parseTagAttribute(pad)
			if err != nil {
				return err
			}
		default:
			return t.fail()
		}
	}
}

// parseTagAttribute parses one attribute starting at its name. It returns
// the whitespace left over after a valueless attribute, which becomes the
// next attribute's leading pad.
func (t *Tokenizer) parseTagAttribute(padFirst string) (string, error) {
	var name []rune
	for isAttrNameChar(t.read(0)) {
		name = append(name, t.read(0))
		t.head++
	}
	padBeforeEq := t.collectTagWhitespace()
	if t.read(0) != '=' {
		t.emit(NewTagAttrStartToken(padFirst, "", ""))
		t.emitText(string(name))
		return padBeforeEq, nil
	}
	t.head++
	padAfterEq := t.collectTagWhitespace()
	t.emit(NewTagAttrStartToken(padFirst, padBeforeEq, padAfterEq))
	t.emitText(string(name))
	t.emit(NewToken(TagAttrEqualsType))
	if err := t.parseTagAttrValue(); err != nil {
		return "", err
	}
	return "", nil
}

// parseTagAttrValue parses a quoted or unquoted attribute value; both may
// embed templates, entities, comments, and wikilinks.
func (t *Tokenizer) parseTagAttrValue() error {
	this := t.read(0)
	if this == '"' || this == '\'' {
		t.emit(NewTagAttrQuoteToken(string(this)))
		t.head++
		t.push(ctxTagAttrValue)
		t.top().quote = this
	} else {
		t.push(ctxTagAttrValue)
	}
	value, err := t.parse(0, false)
	if err != nil {
		return err
	}
	t.emitAll(value)
	return nil
}

// collectTagWhitespace consumes whitespace (including newlines) between
// the pieces of a tag's opening part.
func (t *Tokenizer) collectTagWhitespace() string {
	start := t.head
	for isSpace(t.read(0)) {
		t.head++
	}
	return string(t.text[start:t.head])
}

func isAttrNameChar(r rune) bool {
	if r == eof || isSpace(r) {
		return false
	}
	switch r {
	case '=', '/', '>', '<', '"', '\'':
		return false
	}
	return true
}

// handleTagOpenClose consumes "</name>" ending the current tag body; a
// mismatched name fails the whole tag.
func (t *Tokenizer) handleTagOpenClose() ([]*Token, error) {
	t.head += 2
	start := t.head
	for isTagNameChar(t.read(0)) || isSpace(t.read(0)) {
		t.head++
	}
	if t.read(0) != '>' {
		return nil, t.fail()
	}
	name := string(t.text[start:t.head])
	if strings.ToLower(strings.TrimSpace(name)) != t.top().tagName {
		return nil, t.fail()
	}
	t.emit(NewToken(TagOpenCloseType))
	t.emitText(name)
	t.emit(NewToken(TagCloseCloseType))
	t.head++
	return t.pop(), nil
}

// handleSingleTagEnd ends an unclosed single tag at end of input: its
// ">" becomes an implicit self-close and the body tokens become siblings.
func (t *Tokenizer) handleSingleTagEnd() []*Token {
	t.flushText()
	f := t.top()
	for i, token := range f.tokens {
		if token.Type == TagCloseOpenType {
			padding := ""
			if token.Padding != nil {
				padding = *token.Padding
			}
			f.tokens[i] = NewTagCloseSelfcloseToken(padding, true)
			break
		}
	}
	return t.pop()
}

// parseStyle handles a run of two or more apostrophes: it closes the
// innermost open style frame or speculatively opens italics, bold, or
// both. The returned stack is non-nil when the current frame was closed.
func (t *Tokenizer) parseStyle() (bool, []*Token, error) {
	t.head += 2
	ticks := 2
	for t.read(0) == '\'' {
		ticks++
		t.head++
	}
	ctx := t.context()
	if ticks > 5 {
		t.emitText(strings.Repeat("'", ticks-5))
		ticks = 5
	} else if ticks == 4 {
		t.emitText("'")
		ticks = 3
	}
	italics := ctx&ctxStyleItalics != 0
	bold := ctx&ctxStyleBold != 0
	if (italics && (ticks == 2 || ticks == 5)) || (bold && (ticks == 3 || ticks == 5)) {
		if ticks == 5 {
			// Only part of the run closes this frame; the rest re-opens
			// in the parent.
			if italics {
				t.head -= 3
			} else {
				t.head -= 2
			}
		}
		return true, t.pop(), nil
	}
	if !t.canRecurse() {
		t.emitText(strings.Repeat("'", ticks))
		return false, nil, nil
	}
	switch ticks {
	case 2:
		return false, nil, t.parseItalics()
	case 3:
		return false, nil, t.parseBold()
	default:
		return false, nil, t.parseItalicsAndBold()
	}
}

func (t *Tokenizer) parseItalics() error {
	reset := t.head
	stack, err := t.parse(ctxStyleItalics, true)
	if errors.Is(err, errBadRoute) {
		t.head = reset
		t.emitText("''")
		return nil
	}
	if err != nil {
		return err
	}
	t.emitStyleTag("i", "''", stack)
	return nil
}

func (t *Tokenizer) parseBold() error {
	reset := t.head
	stack, err := t.parse(ctxStyleBold, true)
	if errors.Is(err, errBadRoute) {
		t.head = reset
		t.emitText("'''")
		return nil
	}
	if err != nil {
		return err
	}
	t.emitStyleTag("b", "'''", stack)
	return nil
}

// parseItalicsAndBold resolves a run of five apostrophes: bold wrapping
// italics, italics wrapping bold, or literal text, depending on which
// closers exist downstream.
func (t *Tokenizer) parseItalicsAndBold() error {
	reset := t.head
	stack, err := t.parse(ctxStyleBold, true)
	if err == nil {
		inner := t.head
		stack2, err2 := t.parse(ctxStyleItalics, true)
		if errors.Is(err2, errBadRoute) {
			t.head = inner
			t.emitText("''")
			t.emitStyleTag("b", "'''", stack)
			return nil
		}
		if err2 != nil {
			return err2
		}
		t.push(0)
		t.emitStyleTag("b", "'''", stack)
		t.emitAll(stack2)
		t.emitStyleTag("i", "''", t.pop())
		return nil
	}
	if !errors.Is(err, errBadRoute) {
		return err
	}
	t.head = reset
	stack, err = t.parse(ctxStyleItalics, true)
	if errors.Is(err, errBadRoute) {
		t.head = reset
		t.emitText("'''''")
		return nil
	}
	if err != nil {
		return err
	}
	inner := t.head
	stack2, err := t.parse(ctxStyleBold, true)
	if errors.Is(err, errBadRoute) {
		t.head = inner
		t.emitText("'''")
		t.emitStyleTag("i", "''", stack)
		return nil
	}
	if err != nil {
		return err
	}
	t.push(0)
	t.emitStyleTag("i", "''", stack)
	t.emitAll(stack2)
	t.emitStyleTag("b", "'''", t.pop())
	return nil
}

// emitStyleTag writes the synthetic tag family for a wiki style span.
func (t *Tokenizer) emitStyleTag(tag, markup string, body []*Token) {
	t.emit(NewTagOpenOpenToken(markup))
	t.emitText(tag)
	t.emit(NewToken(TagCloseOpenType))
	t.emitAll(body)
	t.emit(NewToken(TagOpenCloseType))
	t.emitText(tag)
	t.emit(NewToken(TagCloseCloseType))
}

// handleList emits self-closed synthetic tags for a run of line-start list
// markers.
func (t *Tokenizer) handleList() {
	t.handleListMarker()
	for {
		this := t.read(0)
		if this != ';' && this != ':' && this != '*' && this != '#' {
			break
		}
		t.handleListMarker()
	}
}

func (t *Tokenizer) handleListMarker() {
	markup := t.read(0)
	if markup == ';' {
		t.setFlag(ctxDLTerm)
	}
	t.emit(NewTagOpenOpenToken(string(markup)))
	t.emitText(listTagNames[markup])
	t.emit(NewToken(TagCloseSelfcloseType))
	t.head++
}

// handleHR emits the synthetic hr tag for a line-start run of dashes.
func (t *Tokenizer) handleHR() {
	start := t.head
	t.head += 4
	for t.read(0) == '-' {
		t.head++
	}
	t.emit(NewTagOpenOpenToken(string(t.text[start:t.head])))
	t.emitText("hr")
	t.emit(NewToken(TagCloseSelfcloseType))
}

// handleDLTerm ends the definition-term state: a ":" on the same line
// becomes a dd marker, a newline is plain text.
func (t *Tokenizer) handleDLTerm() {
	t.clearFlag(ctxDLTerm)
	if t.read(0) == ':' {
		t.handleListMarker()
		return
	}
	t.emitText("\n")
	t.head++
}
