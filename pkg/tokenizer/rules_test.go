package tokenizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	assert.True(t, rules.isScheme("http", true))
	assert.False(t, rules.isScheme("http", false))
	assert.True(t, rules.isScheme("mailto", false))
	assert.True(t, rules.isScheme("mailto", true))
	assert.False(t, rules.isScheme("malito", false))

	assert.True(t, rules.NamedEntities["nbsp"])
	assert.True(t, rules.NamedEntities["amp"])
	assert.False(t, rules.NamedEntities["bogus"])

	assert.True(t, rules.isFileNamespace("File"))
	assert.True(t, rules.isFileNamespace("image"))
	assert.False(t, rules.isFileNamespace("Category"))
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `schemes:
  - text: gemini
    slashes: true
  - text: matrix
entities:
  - shrug
namespaces:
  - Datei
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, file.Schemes, 2)

	rules, err := ApplyRulesToDefaults(file)
	require.NoError(t, err)
	assert.True(t, rules.isScheme("gemini", true))
	assert.False(t, rules.isScheme("gemini", false))
	assert.True(t, rules.isScheme("matrix", false))
	assert.True(t, rules.NamedEntities["shrug"])
	assert.True(t, rules.isFileNamespace("datei"))
	// Defaults survive the overlay.
	assert.True(t, rules.isScheme("http", true))
}

func TestLoadRulesFileErrors(t *testing.T) {
	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schemes: {not: a list}"), 0o644))
	_, err = LoadRulesFile(path)
	require.Error(t, err)

	_, err = ApplyRulesToDefaults(&RulesFile{Schemes: []SchemeRule{{Text: ""}}})
	require.Error(t, err)
	_, err = ApplyRulesToDefaults(&RulesFile{Entities: []string{""}})
	require.Error(t, err)
	_, err = ApplyRulesToDefaults(&RulesFile{Namespaces: []string{""}})
	require.Error(t, err)
}

func TestCustomRulesChangeTokenization(t *testing.T) {
	rules := DefaultRules()
	rules.URISchemes["gemini"] = true

	tokens, err := NewTokenizerWithRules("gemini://example.org", rules).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, ExternalLinkOpenType, tokens[0].Type)
	assert.Equal(t, "gemini://example.org", tokens[1].Text)

	// The same input is plain text under the defaults.
	tokens, err = Tokenize("gemini://example.org")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TextType, tokens[0].Type)
}
