package main

import (
	"errors"
	"fmt"
	"grsbpl/internal/config"
	"grsbpl/internal/lexer"
	"grsbpl/internal/token"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// ---- repl command ----

func cmdRepl(cfg config.Config) {
	items := make([]readline.PrefixCompleterInterface, 0, len(token.Keywords()))
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(kw))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptStyle.Render("grsbpl> "),
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      readline.NewPrefixCompleter(items...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	// Welcome banner
	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		bannerStyle.Render("grsbpl lexer REPL"), mutedStyle.Render("(type 'exit' or Ctrl+D to quit)"))

	var accumulated strings.Builder

	for {
		// Update prompt based on multi-line state
		if accumulated.Len() > 0 {
			rl.SetPrompt(mutedStyle.Render("...     "))
		} else {
			rl.SetPrompt(promptStyle.Render("grsbpl> "))
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if accumulated.Len() > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s\n", mutedStyle.Render("(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			// EOF (Ctrl+D) or other error → exit
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if accumulated.Len() == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		source := accumulated.String()

		if strings.TrimSpace(source) == "" {
			accumulated.Reset()
			continue
		}

		tokens, lexErr := lexer.Tokenize(source)
		if needsMoreInput(lexErr) {
			continue
		}
		accumulated.Reset()

		if lexErr != nil {
			printLexError(rl.Stderr(), cfg, source, "<repl>", lexErr)
			continue
		}
		printTokensText(rl.Stdout(), tokens[:len(tokens)-1])
	}
}

// needsMoreInput reports whether err only means a block comment is still
// open, in which case the REPL keeps reading lines.
func needsMoreInput(err error) bool {
	return errors.Is(err, lexer.UnterminatedComment)
}
