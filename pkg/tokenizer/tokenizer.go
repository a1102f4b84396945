package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// maxDepth bounds speculative recursion; beyond it openers are
	// emitted as literal text instead of starting new frames.
	maxDepth = 40

	// maxCycles bounds the total number of parse routes explored before
	// the whole invocation fails with a ParserError.
	maxCycles = 100000
)

// eof is returned by read when the requested position is outside the input.
const eof rune = -1

// errBadRoute signals that the current speculative parse cannot produce a
// valid construct. By the time it propagates, every frame pushed by the
// failed route has been popped; the catching handler restores the cursor
// and emits the opener as literal text.
var errBadRoute = errors.New("bad route")

// ParserError reports that the tokenizer exhausted its parse budget. It
// never indicates invalid wikitext; malformed markup becomes literal text.
type ParserError struct {
	Position int
	Reason   string
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("parser error at position %d: %s", e.Position, e.Reason)
}

// frame is a single in-progress parse of one construct. It owns its token
// accumulator and text buffer so that a failed route is discarded in O(1).
type frame struct {
	tokens  []*Token
	textbuf []string
	context context

	// Auxiliary per-construct state.
	tagName       string // lowercased name of the tag whose body this is
	quote         rune   // delimiter of a quoted attribute value, or 0
	headingTarget int    // level implied by the heading's opening run
}

// Tokenizer holds the state of a single tokenization pass over one input.
// A Tokenizer is single-use; create a new one for each input.
type Tokenizer struct {
	text   []rune
	head   int
	stacks []*frame
	depth  int
	cycles int

	// inHeading blocks heading openers while one is being parsed;
	// headings never nest.
	inHeading    bool
	headingLevel int

	rules *Rules
}

// NewTokenizer creates a tokenizer for the given input with default rules.
func NewTokenizer(input string) *Tokenizer {
	return NewTokenizerWithRules(input, DefaultRules())
}

// NewTokenizerWithRules creates a tokenizer with custom rules.
func NewTokenizerWithRules(input string, rules *Rules) *Tokenizer {
	return &Tokenizer{
		text:  []rune(input),
		rules: rules,
	}
}

// Tokenize tokenizes the input and returns the complete token list.
// Ill-formed markup never produces an error; the only failure surface is
// the parse budget.
func Tokenize(input string) ([]*Token, error) {
	return NewTokenizer(input).Tokenize()
}

// Tokenize processes the input and returns the resulting tokens.
func (t *Tokenizer) Tokenize() ([]*Token, error) {
	tokens, err := t.parse(0, true)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// markers are the characters that can begin or end a construct; anything
// else is always plain text.
const markers = "{}[]<>|=&'#*;:/\\\"-!\n"

func isMarker(r rune) bool {
	return r >= 0 && strings.ContainsRune(markers, r)
}

// read returns the rune at the cursor plus delta, or eof outside the input.
func (t *Tokenizer) read(delta int) rune {
	i := t.head + delta
	if i < 0 || i >= len(t.text) {
		return eof
	}
	return t.text[i]
}

// atLineStart reports whether the cursor sits at the start of the input or
// immediately after a newline.
func (t *Tokenizer) atLineStart() bool {
	prev := t.read(-1)
	return prev == eof || prev == '\n'
}

func (t *Tokenizer) top() *frame {
	return t.stacks[len(t.stacks)-1]
}

func (t *Tokenizer) context() context {
	return t.top().context
}

func (t *Tokenizer) setFlag(flag context) {
	t.top().context |= flag
}

func (t *Tokenizer) clearFlag(flag context) {
	t.top().context &^= flag
}

func (t *Tokenizer) canRecurse() bool {
	return t.depth < maxDepth
}

// push opens a new frame for a speculative descent.
func (t *Tokenizer) push(ctx context) {
	t.cycles++
	t.stacks = append(t.stacks, &frame{context: ctx})
	t.depth++
}

// pop commits the current frame, returning its tokens.
func (t *Tokenizer) pop() []*Token {
	t.flushText()
	f := t.top()
	t.stacks = t.stacks[:len(t.stacks)-1]
	t.depth--
	return f.tokens
}

// popDiscard drops the current frame and everything it accumulated.
func (t *Tokenizer) popDiscard() {
	t.stacks = t.stacks[:len(t.stacks)-1]
	t.depth--
}

// fail abandons the current frame and reports a bad route to the caller.
func (t *Tokenizer) fail() error {
	t.popDiscard()
	return errBadRoute
}

// bail converts a handler error into the parse loop's return value: a bad
// route fails this frame too, anything else aborts the invocation.
func (t *Tokenizer) bail(err error) ([]*Token, error) {
	if errors.Is(err, errBadRoute) {
		return nil, t.fail()
	}
	return nil, err
}

// flushText converts the accumulated text buffer into a single text token.
func (t *Tokenizer) flushText() {
	f := t.top()
	if len(f.textbuf) == 0 {
		return
	}
	text := strings.Join(f.textbuf, "")
	f.textbuf = f.textbuf[:0]
	if text == "" {
		return
	}
	f.tokens = append(f.tokens, NewTextToken(text))
}

// emit writes a structural token, committing any buffered text first.
func (t *Tokenizer) emit(token *Token) {
	t.flushText()
	f := t.top()
	f.tokens = append(f.tokens, token)
}

// emitFirst inserts a token at the front of the current frame. Used when a
// construct's opener is only known after its interior has been parsed.
func (t *Tokenizer) emitFirst(token *Token) {
	t.flushText()
	f := t.top()
	f.tokens = append([]*Token{token}, f.tokens...)
}

// emitText appends literal text to the current frame's buffer.
func (t *Tokenizer) emitText(text string) {
	f := t.top()
	f.textbuf = append(f.textbuf, text)
}

// emitAll merges a completed child frame's tokens into the current frame.
// A leading text token is routed through the buffer so that adjacent text
// coalesces.
func (t *Tokenizer) emitAll(tokens []*Token) {
	if len(tokens) > 0 && tokens[0].IsText() {
		t.emitText(tokens[0].Text)
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return
	}
	t.flushText()
	f := t.top()
	f.tokens = append(f.tokens, tokens...)
}

// emitTextThenAll rolls back a failed brace run: the unmatched opener text
// followed by whatever the discarded frame had produced.
func (t *Tokenizer) emitTextThenAll(text string, tokens []*Token) {
	t.emitText(text)
	t.emitAll(tokens)
}

// emitTextRun appends plain characters to the text buffer. In restricted
// contexts it advances one character at a time so that the safety scan
// sees every character.
func (t *Tokenizer) emitTextRun() {
	if t.context()&ctxUnsafe != 0 {
		t.emitText(string(t.read(0)))
		t.head++
		return
	}
	// Unquoted attribute values also end at whitespace.
	unquoted := t.context()&ctxTagAttrValue != 0 && t.top().quote == 0
	start := t.head
	for {
		r := t.read(0)
		if r == eof || isMarker(r) || (unquoted && isSpace(r)) {
			break
		}
		t.head++
	}
	t.emitText(string(t.text[start:t.head]))
}

// verifySafe checks whether the upcoming character is legal in the current
// restricted context, mutating the safety flags as it goes. A violation
// fails the route.
func (t *Tokenizer) verifySafe(this rune) error {
	ctx := t.context()
	if ctx&ctxFailNext != 0 {
		return t.fail()
	}
	if ctx&ctxWikilinkTitle != 0 {
		switch this {
		case ']', '{':
			t.setFlag(ctxFailNext)
		case '\n', '[', '}':
			return t.fail()
		}
		return nil
	}
	if ctx&ctxExtLinkTitle != 0 {
		if this == '\n' {
			return t.fail()
		}
		return nil
	}
	if ctx&ctxTemplateName != 0 {
		switch this {
		case '{', '}', '[':
			t.setFlag(ctxFailNext)
			return nil
		case ']':
			return t.fail()
		case '|':
			return nil
		}
		if ctx&ctxHasText != 0 {
			if ctx&ctxFailOnText != 0 {
				if this == eof || !isSpace(this) {
					return t.fail()
				}
			} else if this == '\n' {
				t.setFlag(ctxFailOnText)
			}
		} else if this != eof && !isSpace(this) {
			t.setFlag(ctxHasText)
		}
		return nil
	}
	// Template param key or argument name: stray braces make a later "="
	// or the brace itself fatal.
	switch {
	case ctx&ctxFailOnEquals != 0:
		if this == '=' {
			return t.fail()
		}
	case ctx&ctxFailOnLBrace != 0:
		if this == '{' || (t.read(-1) == '{' && t.read(-2) == '{') {
			if ctx&ctxTemplate != 0 {
				t.setFlag(ctxFailOnEquals)
			} else {
				return t.fail()
			}
		}
		t.clearFlag(ctxFailOnLBrace)
	case ctx&ctxFailOnRBrace != 0:
		if this == '}' {
			if ctx&ctxTemplate != 0 {
				t.setFlag(ctxFailOnEquals)
			} else {
				return t.fail()
			}
		}
		t.clearFlag(ctxFailOnRBrace)
	case this == '{':
		t.setFlag(ctxFailOnLBrace)
	case this == '}':
		t.setFlag(ctxFailOnRBrace)
	}
	return nil
}

// parse is the dispatcher: it drives the cursor over the input, deciding
// at each position whether to grow the text buffer, open a construct, or
// close the current frame. It returns the frame's tokens on success.
func (t *Tokenizer) parse(ctx context, push bool) ([]*Token, error) {
	if push {
		t.push(ctx)
	}
	for {
		if t.cycles > maxCycles {
			return nil, &ParserError{Position: t.head, Reason: "exceeded maximum parse cycles"}
		}
		this := t.read(0)
		// Comments are legal even in contexts that reject every other
		// construct, so they bypass the safety scan.
		if this == '<' && t.read(1) == '!' && t.read(2) == '-' && t.read(3) == '-' {
			if err := t.parseComment(); err != nil {
				return t.bail(err)
			}
			continue
		}
		cur := t.context()
		if cur&ctxUnsafe != 0 {
			if err := t.verifySafe(this); err != nil {
				return nil, err
			}
			cur = t.context()
		}
		if this == eof {
			if cur&ctxTagBody != 0 && singleTags[t.top().tagName] {
				return t.handleSingleTagEnd(), nil
			}
			if cur&ctxNeedsClose != 0 {
				return nil, t.fail()
			}
			return t.pop(), nil
		}
		// Attribute values end on delimiters that are not markers, so
		// they are checked before the plain-text fast path.
		if cur&ctxTagAttrValue != 0 {
			f := t.top()
			if f.quote != 0 && this == f.quote {
				t.head++
				return t.pop(), nil
			}
			if f.quote == 0 && (isSpace(this) || this == '>' || (this == '/' && t.read(1) == '>')) {
				return t.pop(), nil
			}
		}
		if !isMarker(this) {
			t.emitTextRun()
			continue
		}
		next := t.read(1)
		switch {
		case this == '{' && next == '{':
			if t.canRecurse() {
				if err := t.parseTemplateOrArgument(); err != nil {
					return t.bail(err)
				}
			} else {
				t.emitText("{")
				t.head++
			}
		case this == '|' && cur&ctxTemplate != 0:
			t.handleTemplateParam()
		case this == '=' && cur&ctxTemplateParamKey != 0:
			t.handleTemplateParamValue()
		case this == '}' && next == '}' && cur&ctxTemplate != 0:
			return t.handleTemplateEnd(), nil
		case this == '|' && cur&ctxArgumentName != 0:
			t.handleArgumentSeparator()
		case this == '}' && next == '}' && cur&ctxArgument != 0 && t.read(2) == '}':
			return t.handleArgumentEnd(), nil
		case this == '[' && next == '[':
			if t.canRecurse() {
				if err := t.parseWikilink(); err != nil {
					return t.bail(err)
				}
			} else {
				t.emitText("[")
				t.head++
			}
		case this == '|' && cur&ctxWikilinkTitle != 0:
			t.handleWikilinkSeparator()
		case this == ']' && next == ']' && cur&ctxWikilink != 0:
			return t.handleWikilinkEnd(), nil
		case this == '[':
			if err := t.parseExternalLink(true); err != nil {
				return t.bail(err)
			}
		case this == ':' && t.read(-1) != eof && !isMarker(t.read(-1)):
			if err := t.parseExternalLink(false); err != nil {
				return t.bail(err)
			}
		case this == ']' && cur&ctxExtLinkTitle != 0:
			t.head++
			return t.pop(), nil
		case this == '=' && cur&ctxHeading != 0:
			return t.handleHeadingEnd()
		case this == '=' && !t.inHeading && t.atLineStart():
			if cur&ctxTemplateName != 0 {
				return nil, t.fail()
			}
			if err := t.parseHeading(); err != nil {
				return t.bail(err)
			}
		case this == '\n' && cur&ctxHeading != 0:
			return nil, t.fail()
		case this == '&':
			if err := t.parseEntity(); err != nil {
				return t.bail(err)
			}
		case this == '<' && next == '/' && cur&ctxTagBody != 0:
			return t.handleTagOpenClose()
		case this == '<' && isTagNameChar(next):
			if t.canRecurse() {
				if err := t.parseTag(); err != nil {
					return t.bail(err)
				}
			} else {
				t.emitText("<")
				t.head++
			}
		case this == '\'' && next == '\'':
			done, stack, err := t.parseStyle()
			if err != nil {
				return t.bail(err)
			}
			if done {
				return stack, nil
			}
		case t.atLineStart() && (this == ';' || this == ':' || this == '*' || this == '#'):
			t.handleList()
		case t.atLineStart() && this == '-' && next == '-' && t.read(2) == '-' && t.read(3) == '-':
			t.handleHR()
		case (this == '\n' || this == ':') && cur&ctxDLTerm != 0:
			t.handleDLTerm()
		case this == '\n' && cur&ctxStyle != 0:
			return nil, t.fail()
		default:
			t.emitText(string(this))
			t.head++
		}
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isTagNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSchemeChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '+' || r == '.' || r == '-'
}
