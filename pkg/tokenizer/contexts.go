package tokenizer

// context is a bit set describing which constructs the current parse frame
// is inside. Handlers consult it to decide which closers, separators, and
// embedded constructs are legal at the cursor.
type context uint32

const (
	ctxTemplateName context = 1 << iota
	ctxTemplateParamKey
	ctxTemplateParamValue
	ctxArgumentName
	ctxArgumentDefault
	ctxWikilinkTitle
	ctxWikilinkText
	ctxExtLinkURI
	ctxExtLinkTitle
	ctxHeading
	ctxComment
	ctxTagOpen
	ctxTagAttrValue
	ctxTagBody
	ctxTagClose
	ctxStyleItalics
	ctxStyleBold
	ctxDLTerm
	ctxHTMLEntity

	// Transient safety flags mutated by the safety scan.
	ctxFailNext
	ctxHasText
	ctxFailOnText
	ctxFailOnEquals
	ctxFailOnLBrace
	ctxFailOnRBrace

	// Set on wikilink-text frames whose title carries an image-file
	// namespace prefix; bare URLs are only recognized there.
	ctxWikilinkFile
)

const (
	ctxTemplate = ctxTemplateName | ctxTemplateParamKey | ctxTemplateParamValue
	ctxArgument = ctxArgumentName | ctxArgumentDefault
	ctxWikilink = ctxWikilinkTitle | ctxWikilinkText
	ctxExtLink  = ctxExtLinkURI | ctxExtLinkTitle
	ctxTag      = ctxTagOpen | ctxTagAttrValue | ctxTagBody | ctxTagClose
	ctxStyle    = ctxStyleItalics | ctxStyleBold

	// Contexts whose interior is restricted enough to need per-character
	// verification before dispatch.
	ctxUnsafe = ctxTemplateName | ctxWikilinkTitle | ctxExtLinkTitle |
		ctxTemplateParamKey | ctxArgumentName | ctxTagClose

	// Contexts in which a new external link may not start.
	ctxNoExtLinks = ctxTemplateName | ctxWikilinkTitle | ctxExtLink

	// Contexts in which an HTML tag may not start.
	ctxNoTags = ctxTemplateName | ctxWikilinkTitle | ctxTagClose

	// Contexts that must be explicitly closed before end of input.
	ctxNeedsClose = ctxTemplate | ctxArgument | ctxWikilink | ctxExtLink |
		ctxHeading | ctxComment | ctxTag | ctxStyle

	// Safety flags stripped when a frame's context seeds a child frame.
	ctxSafetyFlags = ctxFailNext | ctxHasText | ctxFailOnText |
		ctxFailOnEquals | ctxFailOnLBrace | ctxFailOnRBrace
)
