package tokenizer

import (
	"errors"
	"strings"
)

// parseTemplateOrArgument resolves a run of two or more "{" characters into
// templates and arguments, preferring the longest opener that can be
// closed. Leftover braces are re-emitted as literal text.
func (t *Tokenizer) parseTemplateOrArgument() error {
	t.head += 2
	braces := 2
	for t.read(0) == '{' {
		t.head++
		braces++
	}
	t.push(0)
	for braces > 0 {
		if braces == 1 {
			t.emitTextThenAll("{", t.pop())
			return nil
		}
		if braces == 2 {
			err := t.parseTemplate()
			if errors.Is(err, errBadRoute) {
				t.emitTextThenAll("{{", t.pop())
				return nil
			}
			if err != nil {
				return err
			}
			break
		}
		err := t.parseArgument()
		if err == nil {
			braces -= 3
			continue
		}
		if !errors.Is(err, errBadRoute) {
			return err
		}
		err = t.parseTemplate()
		if err == nil {
			braces -= 2
			continue
		}
		if !errors.Is(err, errBadRoute) {
			return err
		}
		t.emitTextThenAll(strings.Repeat("{", braces), t.pop())
		return nil
	}
	t.emitAll(t.pop())
	// A brace that opened a valid construct is no longer a violation in
	// the enclosing restricted context.
	t.clearFlag(ctxFailNext)
	return nil
}

// parseTemplate speculatively parses one "{{...}}" template at the cursor.
func (t *Tokenizer) parseTemplate() error {
	reset := t.head
	interior, err := t.parse(ctxTemplateName, true)
	if err != nil {
		t.head = reset
		return err
	}
	t.emitFirst(NewToken(TemplateOpenType))
	t.emitAll(interior)
	t.emit(NewToken(TemplateCloseType))
	return nil
}

// parseArgument speculatively parses one "{{{...}}}" argument at the cursor.
func (t *Tokenizer) parseArgument() error {
	reset := t.head
	interior, err := t.parse(ctxArgumentName, true)
	if err != nil {
		t.head = reset
		return err
	}
	t.emitFirst(NewToken(ArgumentOpenType))
	t.emitAll(interior)
	t.emit(NewToken(ArgumentCloseType))
	return nil
}

// handleTemplateParam handles a "|" inside a template: the first one ends
// the name, every one starts a new parameter key.
func (t *Tokenizer) handleTemplateParam() {
	f := t.top()
	f.context &^= ctxTemplateName | ctxTemplateParamValue | ctxSafetyFlags
	f.context |= ctxTemplateParamKey
	t.emit(NewToken(TemplateParamSeparatorType))
	t.head++
}

// handleTemplateParamValue handles the first "=" of a parameter; later
// equals signs are plain text.
func (t *Tokenizer) handleTemplateParamValue() {
	f := t.top()
	f.context &^= ctxTemplateParamKey | ctxSafetyFlags
	f.context |= ctxTemplateParamValue
	t.emit(NewToken(TemplateParamEqualsType))
	t.head++
}

// handleTemplateEnd closes the template on "}}".
func (t *Tokenizer) handleTemplateEnd() []*Token {
	t.head += 2
	return t.pop()
}

// handleArgumentSeparator handles the first "|" of an argument; later pipes
// inside the default value are plain text.
func (t *Tokenizer) handleArgumentSeparator() {
	f := t.top()
	f.context &^= ctxArgumentName | ctxSafetyFlags
	f.context |= ctxArgumentDefault
	t.emit(NewToken(ArgumentSeparatorType))
	t.head++
}

// handleArgumentEnd closes the argument on "}}}".
func (t *Tokenizer) handleArgumentEnd() []*Token {
	t.head += 3
	return t.pop()
}
