package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wikimark/wikitext-tokenizer/pkg/tokenizer"
	"gopkg.in/yaml.v3"
)

const (
	version = "0.1.0"
	usage   = `wikitext-tokenizer - A tokenizer for MediaWiki wikitext

Usage:
  wikitext-tokenizer [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --rules <file>        YAML rules file overlaying URL schemes, entities,
                        and image namespaces (optional)
  --make-rules          Generate the default rules YAML to stdout
  --check               Verify that the tokens render back to the input
  --exit0               Exit with code 0 on tokenization or --check failures

Examples:
  wikitext-tokenizer                            # Read from stdin, write to stdout
  wikitext-tokenizer --input page.wiki          # Read from file, write to stdout
  wikitext-tokenizer --output tokens.json       # Read from stdin, write to file
  wikitext-tokenizer --rules custom.yaml --input page.wiki
  wikitext-tokenizer --make-rules               # Generate default rules configuration
  echo "{{foo|bar}}" | wikitext-tokenizer       # Read from stdin, write to stdout

The tokenizer outputs one JSON token object per line.
`
)

func main() {
	var showHelp, showVersion, exit0, makeRules, check bool
	var inputFile, outputFile, rulesFile string

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&exit0, "exit0", false, "Exit with code 0 on tokenization or --check failures")
	flag.BoolVar(&makeRules, "make-rules", false, "Generate default rules YAML")
	flag.BoolVar(&check, "check", false, "Verify round-trip fidelity")
	flag.StringVar(&inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&rulesFile, "rules", "", "YAML rules file (optional)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("wikitext-tokenizer version %s\n", version)
		os.Exit(0)
	}

	if makeRules {
		if err := generateDefaultRules(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating default rules: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var input string
	var err error

	if inputFile == "" {
		input, err = readFromStdin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
			os.Exit(1)
		}
	} else {
		input, err = readFromFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", inputFile, err)
			os.Exit(1)
		}
	}

	var t *tokenizer.Tokenizer
	if rulesFile != "" {
		file, err := tokenizer.LoadRulesFile(rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rules file '%s': %v\n", rulesFile, err)
			os.Exit(1)
		}
		rules, err := tokenizer.ApplyRulesToDefaults(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error applying rules: %v\n", err)
			os.Exit(1)
		}
		t = tokenizer.NewTokenizerWithRules(input, rules)
	} else {
		t = tokenizer.NewTokenizer(input)
	}

	tokens, err := t.Tokenize()
	if err != nil {
		if exit0 {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Tokenization error: %v\n", err)
		os.Exit(1)
	}

	if check {
		if rendered := tokenizer.Render(tokens); rendered != input {
			fmt.Fprintf(os.Stderr, "Round-trip check failed: rendered output differs from input\n")
			if !exit0 {
				os.Exit(1)
			}
		}
	}

	var output io.Writer = os.Stdout
	var outputCloser io.Closer
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	for _, token := range tokens {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JSON encoding error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(output, string(jsonBytes))
	}

	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
	}
}

// readFromStdin reads all input from stdin.
func readFromStdin() (string, error) {
	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readFromFile reads the contents of a file.
func readFromFile(filename string) (string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// generateDefaultRules outputs the default tables in YAML format to stdout.
func generateDefaultRules() error {
	rules := tokenizer.DefaultRules()
	file := &tokenizer.RulesFile{}

	for text, slashes := range rules.URISchemes {
		file.Schemes = append(file.Schemes, tokenizer.SchemeRule{
			Text:    text,
			Slashes: slashes,
		})
	}
	for entity := range rules.NamedEntities {
		file.Entities = append(file.Entities, entity)
	}
	for namespace := range rules.FileNamespaces {
		file.Namespaces = append(file.Namespaces, namespace)
	}

	yamlBytes, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	fmt.Print(string(yamlBytes))
	return nil
}
