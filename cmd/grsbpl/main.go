// Command grsbpl is the CLI entry point for the grsbpl lexer.
//
// Usage:
//
//	grsbpl tokens <file>                 Print tokens
//	grsbpl tokens <file> --json          Print tokens as JSON
//	grsbpl tokens <file> --dump          Dump token values
//	grsbpl tokens <file> --match <re>    Print tokens whose lexeme matches re
//	grsbpl check  <file>                 Report the first lexical error, if any
//	grsbpl repl                          Start interactive REPL
package main

import (
	"errors"
	"fmt"
	"grsbpl/internal/config"
	"grsbpl/internal/lexer"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var commands = []string{"tokens", "check", "repl", "help"}

func main() {
	log.SetFlags(0)
	log.SetPrefix("grsbpl: ")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]

	// help and unknown commands never read the config file
	if code, handled := runWithoutConfig(command, os.Stdout, os.Stderr); handled {
		os.Exit(code)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "tokens":
		os.Exit(cmdTokens(cfg, os.Args[2:]))
	case "check":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		os.Exit(cmdCheck(cfg, os.Args[2]))
	case "repl":
		cmdRepl(cfg)
	}
}

// runWithoutConfig handles the commands that need no configuration and
// reports whether command was one of them.
func runWithoutConfig(command string, stdout, stderr io.Writer) (int, bool) {
	switch command {
	case "tokens", "check", "repl":
		return 0, false
	case "help", "-h", "--help":
		usage(stdout)
		return 0, true
	default:
		fmt.Fprintf(stderr, "error: unknown command '%s'\n", command)
		if s := suggest(command, commands); len(s) > 0 {
			fmt.Fprintf(stderr, "did you mean '%s'?\n", strings.Join(s, "' or '"))
		}
		usage(stderr)
		return 1, true
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  grsbpl tokens <file> [--json] [--dump] [--match <re>]   Tokenize and print tokens")
	fmt.Fprintln(w, "  grsbpl check  <file>                                    Report lexical errors")
	fmt.Fprintln(w, "  grsbpl repl                                             Start interactive REPL")
}

func readFile(filename string) string {
	source, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("cannot read file %s: %v", filename, err)
	}
	return string(source)
}

// suggest returns the commands close to input, best match first.
func suggest(input string, candidates []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(input, candidates)
	sort.Sort(ranks)

	var out []string
	seen := make(map[string]bool)
	for _, r := range ranks {
		out = append(out, r.Target)
		seen[r.Target] = true
	}
	for _, c := range candidates {
		if !seen[c] && fuzzy.LevenshteinDistance(strings.ToLower(input), c) <= 2 {
			out = append(out, c)
		}
	}
	return out
}

// ---- tokens command ----

type tokensOptions struct {
	file  string
	json  bool
	dump  bool
	match string
}

func parseTokensArgs(args []string) (tokensOptions, error) {
	var opts tokensOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--json":
			opts.json = true
		case "--dump":
			opts.dump = true
		case "--match":
			if i+1 >= len(args) {
				return opts, errors.New("--match needs a pattern")
			}
			i++
			opts.match = args[i]
		default:
			if strings.HasPrefix(arg, "--") {
				return opts, fmt.Errorf("unknown flag '%s'", arg)
			}
			if opts.file != "" {
				return opts, fmt.Errorf("unexpected argument '%s'", arg)
			}
			opts.file = arg
		}
	}
	if opts.file == "" {
		return opts, errors.New("missing file argument")
	}
	return opts, nil
}

func cmdTokens(cfg config.Config, args []string) int {
	opts, err := parseTokensArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	var re *regexp2.Regexp
	if opts.match != "" {
		if re, err = regexp2.Compile(opts.match, regexp2.None); err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid --match pattern: %v\n", err)
			return 2
		}
	}

	source := readFile(opts.file)
	tokens, lexErr := lexer.Tokenize(source)
	if tokens, err = filterTokens(tokens, re); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	switch {
	case opts.dump:
		dumpTokens(os.Stdout, tokens, lexErr)
	case opts.json || cfg.JSON:
		printTokensJSON(os.Stdout, tokens, lexErr)
		if lexErr != nil {
			return 1
		}
		return 0
	default:
		printTokensText(os.Stdout, tokens)
	}

	if lexErr != nil {
		printLexError(os.Stderr, cfg, source, opts.file, lexErr)
		return 1
	}
	return 0
}

// ---- check command ----

func cmdCheck(cfg config.Config, filename string) int {
	source := readFile(filename)
	if _, err := lexer.Tokenize(source); err != nil {
		printLexError(os.Stderr, cfg, source, filename, err)
		return 1
	}
	return 0
}
