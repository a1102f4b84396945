package tokenizer

import (
	"errors"
	"strconv"
)

const maxEntityLength = 12

// parseEntity recognizes an HTML character reference at "&". Anything that
// is not a complete, known entity leaves the ampersand as literal text.
func (t *Tokenizer) parseEntity() error {
	reset := t.head
	t.push(ctxHTMLEntity)
	err := t.reallyParseEntity()
	if errors.Is(err, errBadRoute) {
		t.popDiscard()
		t.head = reset
		t.emitText("&")
		t.head++
		return nil
	}
	if err != nil {
		return err
	}
	t.emitAll(t.pop())
	return nil
}

func (t *Tokenizer) reallyParseEntity() error {
	t.emit(NewToken(HTMLEntityStartType))
	t.head++
	this := t.read(0)
	if this == eof {
		return errBadRoute
	}
	numeric, hexadecimal := false, false
	if this == '#' {
		numeric = true
		t.head++
		if t.read(0) == 'x' {
			hexadecimal = true
			t.head++
		}
		t.emit(NewHTMLEntityNumericToken(hexadecimal))
	}
	var body []rune
	for {
		this = t.read(0)
		if this == ';' {
			break
		}
		if !isEntityChar(this, numeric, hexadecimal) {
			return errBadRoute
		}
		body = append(body, this)
		t.head++
		if len(body) > maxEntityLength {
			return errBadRoute
		}
	}
	if len(body) == 0 {
		return errBadRoute
	}
	if numeric {
		base := 10
		if hexadecimal {
			base = 16
		}
		value, err := strconv.ParseInt(string(body), base, 32)
		if err != nil || value > 0x10FFFF {
			return errBadRoute
		}
	} else if !t.rules.NamedEntities[string(body)] {
		return errBadRoute
	}
	t.emitText(string(body))
	t.emit(NewToken(HTMLEntityEndType))
	t.head++
	return nil
}

func isEntityChar(r rune, numeric, hexadecimal bool) bool {
	switch {
	case hexadecimal:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	case numeric:
		return r >= '0' && r <= '9'
	default:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
}

// restrictedComment lists the contexts in which an unterminated comment
// cannot degrade to literal text and instead invalidates the construct
// around it.
const restrictedComment = ctxTemplateName | ctxWikilink | ctxExtLink |
	ctxTagOpen | ctxTagAttrValue

// parseComment recognizes "<!-- ... -->". The interior is a single opaque
// text token; even template names admit comments.
func (t *Tokenizer) parseComment() error {
	reset := t.head
	t.head += 4
	t.push(ctxComment)
	for {
		this := t.read(0)
		if this == eof {
			t.popDiscard()
			if t.context()&restrictedComment != 0 {
				return errBadRoute
			}
			t.head = reset
			t.emitText("<!--")
			t.head += 4
			return nil
		}
		if this == '-' && t.read(1) == '-' && t.read(2) == '>' {
			comment := t.pop()
			t.emit(NewToken(CommentStartType))
			t.emitAll(comment)
			t.emit(NewToken(CommentEndType))
			t.head += 3
			return nil
		}
		t.emitText(string(this))
		t.head++
	}
}
