package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"grsbpl/internal/config"
	"grsbpl/internal/diag"
	"grsbpl/internal/lexer"
	"grsbpl/internal/token"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/davecgh/go-spew/spew"
	"github.com/dlclark/regexp2"
)

// ---- output helpers ----

func printJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: JSON encoding failed: %v\n", err)
		os.Exit(1)
	}
}

// renderOptions maps cfg onto diag.Options. Color is only used on terminals;
// writers that are not files (the REPL's) are judged by stdout.
func renderOptions(cfg config.Config, w io.Writer) diag.Options {
	f, ok := w.(*os.File)
	if !ok {
		f = os.Stdout
	}
	color := cfg.Color && readline.IsTerminal(int(f.Fd()))
	return diag.Options{Color: color, TabWidth: cfg.TabWidth, MaxWidth: cfg.MaxWidth}
}

// printLexError renders err against source, falling back to the plain
// message for errors that carry no position.
func printLexError(w io.Writer, cfg config.Config, source, filename string, err error) {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if rerr := diag.Render(w, source, lexErr.Diagnostic(filename), renderOptions(cfg, w)); rerr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", rerr)
	}
}

func errorToMap(err error) map[string]interface{} {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		return map[string]interface{}{"message": err.Error()}
	}
	m := map[string]interface{}{
		"code":        lexErr.Code(),
		"kind":        lexErr.Kind.String(),
		"message":     lexErr.Message,
		"line_number": lexErr.LineNumber(),
		"line_offset": lexErr.LineOffset(),
		"line_length": lexErr.LineLength,
		"offset":      lexErr.Pos.Offset,
	}
	if lexErr.Hint != "" {
		m["hint"] = lexErr.Hint
	}
	return m
}

// ---- token output helpers ----

// filterTokens keeps the tokens whose lexeme matches re; a nil re keeps all.
func filterTokens(tokens []token.Token, re *regexp2.Regexp) ([]token.Token, error) {
	if re == nil {
		return tokens, nil
	}
	var kept []token.Token
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		ok, err := re.MatchString(tok.Lexeme)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, tok)
		}
	}
	return kept, nil
}

func printTokensText(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%-12s %-20s %s\n", tok.Kind, tok.Lexeme, tok.Span.Start)
	}
}

func printTokensJSON(w io.Writer, tokens []token.Token, lexErr error) {
	type tokenJSON struct {
		Kind   string `json:"kind"`
		Lexeme string `json:"lexeme"`
		Value  string `json:"value,omitempty"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
		Offset int    `json:"offset"`
	}

	toks := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Value:  tok.Value,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
			Offset: tok.Span.Start.Offset,
		})
	}

	output := map[string]interface{}{
		"tokens": toks,
		"error":  nil,
	}
	if lexErr != nil {
		output["error"] = errorToMap(lexErr)
	}
	printJSON(w, output)
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func dumpTokens(w io.Writer, tokens []token.Token, lexErr error) {
	dumper.Fdump(w, tokens)
	if lexErr != nil {
		dumper.Fdump(w, lexErr)
	}
}
