package tokenizer

import (
	"errors"
	"strings"
)

// trailingPunct are the characters trimmed from the end of a bare URL.
// ")" only counts while no "(" has been seen in the URL body.
const trailingPunct = ",;.:!?"

// parseExternalLink recognizes either a bracketed "[url ...]" link or a
// bare URL whose scheme sits just behind the cursor's ":". When no link
// can form, the trigger character stays literal; a ":" that follows a
// definition term becomes a dd marker instead.
func (t *Tokenizer) parseExternalLink(brackets bool) error {
	reset := t.head
	ctx := t.context()
	badContext := ctx&ctxNoExtLinks != 0 ||
		(ctx&ctxWikilinkText != 0 && ctx&ctxWikilinkFile == 0)
	if badContext || !t.canRecurse() {
		t.emitText(string(t.read(0)))
		t.head++
		return nil
	}
	t.head++
	link, tail, err := t.reallyParseExternalLink(brackets)
	if errors.Is(err, errBadRoute) {
		t.head = reset
		if !brackets && t.context()&ctxDLTerm != 0 {
			t.handleDLTerm()
			return nil
		}
		t.emitText(string(t.read(0)))
		t.head++
		return nil
	}
	if err != nil {
		return err
	}
	if !brackets && len(link) > 0 && link[0].IsText() {
		// The scheme was parsed as parent text before the ":" triggered
		// the link; reclaim it now that the link is committed.
		scheme, _, _ := strings.Cut(link[0].Text, ":")
		t.stripTextTail(len([]rune(scheme)))
	}
	t.emit(NewExternalLinkOpenToken(brackets))
	t.emitAll(link)
	t.emit(NewToken(ExternalLinkCloseType))
	if tail != "" {
		t.emitText(tail)
	}
	return nil
}

// reallyParseExternalLink scans the URL (and, for bracketed links, the
// title) after the scheme has been validated. It returns the link's
// interior tokens plus any trailing punctuation pushed back into the
// parent text stream.
func (t *Tokenizer) reallyParseExternalLink(brackets bool) ([]*Token, string, error) {
	var err error
	if brackets {
		err = t.parseBracketedURIScheme()
	} else {
		err = t.parseFreeURIScheme()
	}
	if err != nil {
		return nil, "", err
	}
	// A link needs at least one URL character after the scheme.
	first := t.read(0)
	if brackets {
		if first == eof || first == '\n' || first == ' ' || first == ']' {
			return nil, "", t.fail()
		}
	} else if first == eof || first == '\n' || first == ' ' ||
		isFreeLinkTerminator(first) || (first == '\'' && t.read(1) == '\'') {
		return nil, "", t.fail()
	}

	var tail strings.Builder
	flushTail := func() {
		if tail.Len() > 0 {
			t.emitText(tail.String())
			tail.Reset()
		}
	}
	parens := false
	for {
		this, next := t.read(0), t.read(1)
		switch {
		case this == '&':
			flushTail()
			if err := t.parseEntity(); err != nil {
				return nil, "", err
			}
		case this == '<' && next == '!' && t.read(2) == '-' && t.read(3) == '-':
			flushTail()
			if err := t.parseComment(); err != nil {
				return nil, "", err
			}
		case this == '{' && next == '{' && t.canRecurse():
			flushTail()
			if err := t.parseTemplateOrArgument(); err != nil {
				return nil, "", err
			}
		case !brackets:
			if this == eof || this == '\n' || this == ' ' || isFreeLinkTerminator(this) ||
				(this == '\'' && next == '\'') {
				return t.pop(), tail.String(), nil
			}
			switch {
			case this == '(':
				parens = true
				flushTail()
				t.emitText(string(this))
			case strings.ContainsRune(trailingPunct, this) || (this == ')' && !parens):
				tail.WriteRune(this)
			default:
				flushTail()
				t.emitText(string(this))
			}
			t.head++
		case this == eof || this == '\n':
			return nil, "", t.fail()
		case this == ']':
			t.head++
			return t.pop(), "", nil
		case this == ' ':
			// The separator's source span is the space itself; the rest
			// of the link is its title.
			t.emit(NewToken(ExternalLinkSeparatorType))
			f := t.top()
			f.context &^= ctxExtLinkURI
			f.context |= ctxExtLinkTitle
			t.head++
			title, err := t.parse(0, false)
			return title, "", err
		default:
			t.emitText(string(this))
			t.head++
		}
	}
}

// isFreeLinkTerminator reports characters that can never be part of a bare
// URL and end it immediately.
func isFreeLinkTerminator(r rune) bool {
	switch r {
	case '[', ']', '<', '>', '"', '{', '}', '|', '\t':
		return true
	}
	return false
}

// parseFreeURIScheme validates the scheme sitting at the tail of the
// current frame's text buffer. The scheme stays in the parent buffer until
// the whole link commits.
func (t *Tokenizer) parseFreeURIScheme() error {
	f := t.top()
	chars := []rune(strings.Join(f.textbuf, ""))
	start := len(chars)
	for start > 0 {
		prev := chars[start-1]
		if isSpace(prev) || isMarker(prev) {
			break
		}
		if !isSchemeChar(prev) {
			return errBadRoute
		}
		start--
	}
	scheme := string(chars[start:])
	if scheme == "" {
		return errBadRoute
	}
	slashes := t.read(0) == '/' && t.read(1) == '/'
	if !t.rules.isScheme(strings.ToLower(scheme), slashes) {
		return errBadRoute
	}
	t.push(ctxExtLinkURI)
	t.emitText(scheme)
	t.emitText(":")
	if slashes {
		t.emitText("//")
		t.head += 2
	}
	return nil
}

// stripTextTail removes the last n runes from the current frame's pending
// text buffer.
func (t *Tokenizer) stripTextTail(n int) {
	f := t.top()
	for n > 0 && len(f.textbuf) > 0 {
		last := []rune(f.textbuf[len(f.textbuf)-1])
		if len(last) > n {
			f.textbuf[len(f.textbuf)-1] = string(last[:len(last)-n])
			return
		}
		n -= len(last)
		f.textbuf = f.textbuf[:len(f.textbuf)-1]
	}
}

// parseBracketedURIScheme validates the scheme immediately after "[".
func (t *Tokenizer) parseBracketedURIScheme() error {
	t.push(ctxExtLinkURI)
	var scheme []rune
	for isSchemeChar(t.read(0)) {
		scheme = append(scheme, t.read(0))
		t.head++
	}
	if len(scheme) == 0 || t.read(0) != ':' {
		return t.fail()
	}
	slashes := t.read(1) == '/' && t.read(2) == '/'
	if !t.rules.isScheme(strings.ToLower(string(scheme)), slashes) {
		return t.fail()
	}
	t.emitText(string(scheme))
	t.emitText(":")
	t.head++
	if slashes {
		t.emitText("//")
		t.head += 2
	}
	return nil
}
