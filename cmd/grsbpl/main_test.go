package main

import (
	"bytes"
	"encoding/json"
	"grsbpl/internal/config"
	"grsbpl/internal/lexer"
	"grsbpl/internal/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"tokens"}, suggest("tok", commands))
	assert.Equal(t, []string{"check"}, suggest("chek", commands))
	assert.Contains(t, suggest("REPL", commands), "repl")
	assert.Empty(t, suggest("xyzzy", commands))
}

func TestHelpIgnoresBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tab_width: [nope\n"), 0o644))
	t.Setenv(config.EnvPath, path)

	_, err := config.Load()
	require.Error(t, err)

	for _, cmd := range []string{"help", "-h", "--help"} {
		var stdout, stderr bytes.Buffer
		code, handled := runWithoutConfig(cmd, &stdout, &stderr)
		assert.True(t, handled, cmd)
		assert.Equal(t, 0, code, cmd)
		assert.True(t, strings.HasPrefix(stdout.String(), "Usage:\n"), cmd)
		assert.Empty(t, stderr.String(), cmd)
	}
}

func TestRunWithoutConfigUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, handled := runWithoutConfig("chek", &stdout, &stderr)
	assert.True(t, handled)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "error: unknown command 'chek'\ndid you mean 'check'?\n")

	for _, cmd := range []string{"tokens", "check", "repl"} {
		_, handled := runWithoutConfig(cmd, &stdout, &stderr)
		assert.False(t, handled, cmd)
	}
}

func TestParseTokensArgs(t *testing.T) {
	opts, err := parseTokensArgs([]string{"--json", "main.gb", "--match", `^\d+$`})
	require.NoError(t, err)
	assert.Equal(t, tokensOptions{file: "main.gb", json: true, match: `^\d+$`}, opts)

	_, err = parseTokensArgs([]string{"--match"})
	assert.ErrorContains(t, err, "needs a pattern")

	_, err = parseTokensArgs([]string{"--jsn", "a.gb"})
	assert.ErrorContains(t, err, "unknown flag")

	_, err = parseTokensArgs([]string{"a.gb", "b.gb"})
	assert.ErrorContains(t, err, "unexpected argument")

	_, err = parseTokensArgs(nil)
	assert.ErrorContains(t, err, "missing file")
}

func TestFilterTokens(t *testing.T) {
	tokens, err := lexer.Tokenize("dup 12 swap 0xff drop")
	require.NoError(t, err)

	all, err := filterTokens(tokens, nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	// lookahead is a regexp2 feature the standard library lacks
	re := regexp2.MustCompile(`^(?=.*\d)\w+$`, regexp2.None)
	kept, err := filterTokens(tokens, re)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "12", kept[0].Lexeme)
	assert.Equal(t, "0xff", kept[1].Lexeme)
}

func TestPrintTokensJSONIncludesError(t *testing.T) {
	tokens, lexErr := lexer.Tokenize("1 + % 2")
	require.Error(t, lexErr)

	var buf bytes.Buffer
	printTokensJSON(&buf, tokens, lexErr)

	var out struct {
		Tokens []struct {
			Kind   string `json:"kind"`
			Column int    `json:"column"`
		} `json:"tokens"`
		Error map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Tokens, 2)
	assert.Equal(t, "INT", out.Tokens[0].Kind)
	assert.Equal(t, "+", out.Tokens[1].Kind)
	assert.Equal(t, 2, out.Tokens[1].Column)
	assert.Equal(t, "E1001", out.Error["code"])
	assert.EqualValues(t, 1, out.Error["line_number"])
	assert.EqualValues(t, 4, out.Error["line_offset"])
	assert.EqualValues(t, 7, out.Error["line_length"])
}

func TestPrintTokensText(t *testing.T) {
	var buf bytes.Buffer
	printTokensText(&buf, []token.Token{{Kind: token.KW_DUP, Lexeme: "dup"}})
	assert.Equal(t, "dup          dup                  0:1\n", buf.String())
}

func TestPrintLexErrorRendersExcerpt(t *testing.T) {
	source := "dup\n\"open"
	_, err := lexer.Tokenize(source)
	require.Error(t, err)

	cfg := config.Default()
	cfg.Color = false

	var buf bytes.Buffer
	printLexError(&buf, cfg, source, "main.gb", err)

	got := buf.String()
	assert.True(t, strings.HasPrefix(got, "error[E1002]: unterminated string literal\n"), got)
	assert.Contains(t, got, " --> main.gb:2:1\n")
	assert.Contains(t, got, "2 | \"open\n  | ^"+strings.Repeat("~", 4)+"\n")
}

func TestDumpTokens(t *testing.T) {
	tokens, err := lexer.Tokenize("'a'")
	require.NoError(t, err)

	var buf bytes.Buffer
	dumpTokens(&buf, tokens, nil)
	assert.Contains(t, buf.String(), `Value: (string) (len=1) "a"`)
}

func TestNeedsMoreInput(t *testing.T) {
	_, err := lexer.Tokenize("dup /* still open\n")
	assert.True(t, needsMoreInput(err))

	_, err = lexer.Tokenize("\"open\n")
	assert.False(t, needsMoreInput(err))
	assert.False(t, needsMoreInput(nil))
}
