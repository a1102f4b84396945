package tokenizer

import (
	"errors"
	"strings"
)

// parseWikilink speculatively parses "[[...]]" at the cursor. On failure
// only the first bracket becomes literal text, so the remainder can still
// open a bracketed external link.
func (t *Tokenizer) parseWikilink() error {
	reset := t.head + 1
	t.head += 2
	interior, err := t.parse(ctxWikilinkTitle, true)
	if errors.Is(err, errBadRoute) {
		t.head = reset
		t.emitText("[")
		return nil
	}
	if err != nil {
		return err
	}
	t.emit(NewToken(WikilinkOpenType))
	t.emitAll(interior)
	t.emit(NewToken(WikilinkCloseType))
	return nil
}

// handleWikilinkSeparator handles the first "|": the title ends and the
// display text begins. Titles with an image-file namespace prefix allow
// bare URLs in their text portion.
func (t *Tokenizer) handleWikilinkSeparator() {
	f := t.top()
	title := t.currentText()
	f.context &^= ctxWikilinkTitle | ctxSafetyFlags
	f.context |= ctxWikilinkText
	if idx := strings.IndexByte(title, ':'); idx > 0 {
		if t.rules.isFileNamespace(strings.TrimSpace(title[:idx])) {
			f.context |= ctxWikilinkFile
		}
	}
	t.emit(NewToken(WikilinkSeparatorType))
	t.head++
}

// handleWikilinkEnd closes the wikilink on "]]".
func (t *Tokenizer) handleWikilinkEnd() []*Token {
	t.head += 2
	return t.pop()
}

// currentText returns the plain text accumulated so far in the current
// frame: the leading text token if one was already committed, otherwise
// the pending buffer.
func (t *Tokenizer) currentText() string {
	f := t.top()
	if len(f.tokens) > 0 && f.tokens[0].IsText() {
		return f.tokens[0].Text
	}
	return strings.Join(f.textbuf, "")
}
