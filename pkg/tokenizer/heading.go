package tokenizer

import (
	"errors"
	"strings"
)

// parseHeading speculatively parses a heading starting at a line-initial
// run of "=" characters. Without a matching closing run before the next
// newline the whole run becomes literal text.
func (t *Tokenizer) parseHeading() error {
	t.inHeading = true
	defer func() { t.inHeading = false }()

	reset := t.head
	t.head++
	best := 1
	for t.read(0) == '=' {
		best++
		t.head++
	}
	target := best
	if target > 6 {
		target = 6
	}
	t.push(ctxHeading)
	t.top().headingTarget = target
	interior, err := t.parse(0, false)
	if errors.Is(err, errBadRoute) {
		t.head = reset + best
		t.emitText(strings.Repeat("=", best))
		return nil
	}
	if err != nil {
		return err
	}
	level := t.headingLevel
	t.emit(NewHeadingStartToken(level))
	if level < best {
		// The opening run was longer than the closing one; the excess
		// equals signs belong to the heading text.
		t.emitText(strings.Repeat("=", best-level))
	}
	t.emitAll(interior)
	t.emit(NewToken(HeadingEndType))
	return nil
}

// handleHeadingEnd decides whether a "=" run closes the heading. If a later
// run also closes it before the newline, this run is literal text and the
// later one wins.
func (t *Tokenizer) handleHeadingEnd() ([]*Token, error) {
	reset := t.head
	t.head++
	best := 1
	for t.read(0) == '=' {
		best++
		t.head++
	}
	target := t.top().headingTarget
	level := best
	if level > 6 {
		level = 6
	}
	if target < level {
		level = target
	}
	t.push(ctxHeading)
	t.top().headingTarget = target
	after, err := t.parse(0, false)
	if errors.Is(err, errBadRoute) {
		if level < best {
			t.emitText(strings.Repeat("=", best-level))
		}
		t.head = reset + best
		t.headingLevel = level
		return t.pop(), nil
	}
	if err != nil {
		return nil, err
	}
	t.emitText(strings.Repeat("=", best))
	t.emitAll(after)
	return t.pop(), nil
}
