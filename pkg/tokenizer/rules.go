package tokenizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file. Each section
// overlays the corresponding default table.
type RulesFile struct {
	Schemes    []SchemeRule `yaml:"schemes"`
	Entities   []string     `yaml:"entities"`
	Namespaces []string     `yaml:"namespaces"`
}

// SchemeRule represents a recognized URL scheme. Slashes marks schemes that
// require "//" after the colon ("http"); schemes like "mailto" carry their
// body directly.
type SchemeRule struct {
	Text    string `yaml:"text"`
	Slashes bool   `yaml:"slashes"`
}

// Rules holds the data tables that drive the tokenizer: URL schemes, named
// HTML entities, and image-file namespace prefixes.
type Rules struct {
	// URISchemes maps a lowercase scheme to whether it requires "//".
	URISchemes map[string]bool

	// NamedEntities is the set of recognized named character references.
	NamedEntities map[string]bool

	// FileNamespaces is the set of lowercase wikilink namespace prefixes
	// that carry image semantics ("file", "image").
	FileNamespaces map[string]bool
}

// DefaultRules returns the default tokenizer rules.
func DefaultRules() *Rules {
	return &Rules{
		URISchemes:     defaultURISchemes(),
		NamedEntities:  defaultNamedEntities(),
		FileNamespaces: map[string]bool{"file": true, "image": true},
	}
}

func defaultURISchemes() map[string]bool {
	schemes := make(map[string]bool)
	// Schemes that require "//" after the colon.
	for _, scheme := range []string{
		"ftp", "ftps", "git", "gopher", "http", "https", "irc", "ircs",
		"mms", "nntp", "redis", "sftp", "ssh", "svn", "telnet", "worldwind",
	} {
		schemes[scheme] = true
	}
	// Schemes usable without slashes.
	for _, scheme := range []string{
		"bitcoin", "magnet", "mailto", "news", "sips", "sms", "tel", "urn", "xmpp",
	} {
		schemes[scheme] = false
	}
	return schemes
}

func defaultNamedEntities() map[string]bool {
	names := []string{
		"AElig", "Aacute", "Acirc", "Agrave", "Alpha", "Aring", "Atilde",
		"Auml", "Beta", "Ccedil", "Chi", "Dagger", "Delta", "ETH",
		"Eacute", "Ecirc", "Egrave", "Epsilon", "Eta", "Euml", "Gamma",
		"Iacute", "Icirc", "Igrave", "Iota", "Iuml", "Kappa", "Lambda",
		"Mu", "Ntilde", "Nu", "OElig", "Oacute", "Ocirc", "Ograve",
		"Omega", "Omicron", "Oslash", "Otilde", "Ouml", "Phi", "Pi",
		"Prime", "Psi", "Rho", "Scaron", "Sigma", "THORN", "Tau",
		"Theta", "Uacute", "Ucirc", "Ugrave", "Upsilon", "Uuml", "Xi",
		"Yacute", "Yuml", "Zeta", "aacute", "acirc", "acute", "aelig",
		"agrave", "alefsym", "alpha", "amp", "and", "ang", "apos",
		"aring", "asymp", "atilde", "auml", "bdquo", "beta", "brvbar",
		"bull", "cap", "ccedil", "cedil", "cent", "chi", "circ",
		"clubs", "cong", "copy", "crarr", "cup", "curren", "dArr",
		"dagger", "darr", "deg", "delta", "diams", "divide", "eacute",
		"ecirc", "egrave", "empty", "emsp", "ensp", "epsilon", "equiv",
		"eta", "eth", "euml", "euro", "exist", "fnof", "forall",
		"frac12", "frac14", "frac34", "frasl", "gamma", "ge", "gt",
		"hArr", "harr", "hearts", "hellip", "iacute", "icirc", "iexcl",
		"igrave", "image", "infin", "int", "iota", "iquest", "isin",
		"iuml", "kappa", "lArr", "lambda", "lang", "laquo", "larr",
		"lceil", "ldquo", "le", "lfloor", "lowast", "loz", "lrm",
		"lsaquo", "lsquo", "lt", "macr", "mdash", "micro", "middot",
		"minus", "mu", "nabla", "nbsp", "ndash", "ne", "ni", "not",
		"notin", "nsub", "ntilde", "nu", "oacute", "ocirc", "oelig",
		"ograve", "oline", "omega", "omicron", "oplus", "or", "ordf",
		"ordm", "oslash", "otilde", "otimes", "ouml", "para", "part",
		"permil", "perp", "phi", "pi", "piv", "plusmn", "pound",
		"prime", "prod", "prop", "psi", "quot", "rArr", "radic",
		"rang", "raquo", "rarr", "rceil", "rdquo", "real", "reg",
		"rfloor", "rho", "rlm", "rsaquo", "rsquo", "sbquo", "scaron",
		"sdot", "sect", "shy", "sigma", "sigmaf", "sim", "spades",
		"sub", "sube", "sum", "sup", "sup1", "sup2", "sup3", "supe",
		"szlig", "tau", "there4", "theta", "thetasym", "thinsp",
		"thorn", "tilde", "times", "trade", "uArr", "uacute", "uarr",
		"ucirc", "ugrave", "uml", "upsih", "upsilon", "uuml", "weierp",
		"xi", "yacute", "yen", "yuml", "zeta", "zwj", "zwnj",
	}
	entities := make(map[string]bool, len(names))
	for _, name := range names {
		entities[name] = true
	}
	return entities
}

// LoadRulesFile reads a YAML rules file from disk.
func LoadRulesFile(path string) (*RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	return &file, nil
}

// ApplyRulesToDefaults overlays a rules file on top of the default tables.
func ApplyRulesToDefaults(file *RulesFile) (*Rules, error) {
	rules := DefaultRules()
	for _, scheme := range file.Schemes {
		if scheme.Text == "" {
			return nil, fmt.Errorf("scheme rule with empty text")
		}
		rules.URISchemes[strings.ToLower(scheme.Text)] = scheme.Slashes
	}
	for _, entity := range file.Entities {
		if entity == "" {
			return nil, fmt.Errorf("entity rule with empty name")
		}
		rules.NamedEntities[entity] = true
	}
	for _, namespace := range file.Namespaces {
		if namespace == "" {
			return nil, fmt.Errorf("namespace rule with empty name")
		}
		rules.FileNamespaces[strings.ToLower(namespace)] = true
	}
	return rules, nil
}

// isScheme reports whether scheme (already lowercased) is a recognized URL
// scheme compatible with the presence or absence of "//" after the colon.
func (r *Rules) isScheme(scheme string, slashes bool) bool {
	needsSlashes, ok := r.URISchemes[scheme]
	if !ok {
		return false
	}
	return slashes || !needsSlashes
}

// isFileNamespace reports whether a wikilink title prefix carries image
// semantics.
func (r *Rules) isFileNamespace(prefix string) bool {
	return r.FileNamespaces[strings.ToLower(prefix)]
}
