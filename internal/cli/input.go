// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordsuggest/internal/logger"
	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/bastiangx/wordsuggest/pkg/config"
	"github.com/bastiangx/wordsuggest/pkg/dictionary"
	"github.com/bastiangx/wordsuggest/pkg/spell"
	"github.com/bastiangx/wordsuggest/pkg/suggest"
	"github.com/charmbracelet/log"
)

// errQuit ends the input loop without an error.
var errQuit = errors.New("quit")

// InputHandler processes user input from stdin. Plain lines are queries; lines
// starting with ':' are commands (see :help).
type InputHandler struct {
	completer       suggest.Completer
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	showTiming      bool

	savePath   string
	saveFormat dictionary.FileFormat
	delimiter  string

	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewInputHandler creates a handler reading stdin and writing stdout, configured
// from the [cli] section.
func NewInputHandler(completer suggest.Completer, cfg config.CliConfig) *InputHandler {
	h := &InputHandler{
		completer:       completer,
		minPrefixLength: cfg.DefaultMinLen,
		maxPrefixLength: cfg.DefaultMaxLen,
		suggestLimit:    cfg.DefaultLimit,
		noFilter:        cfg.DefaultNoFilter,
		showTiming:      cfg.ShowTiming,
		delimiter:       dictionary.DefaultDelimiter,
	}
	h.SetIO(os.Stdin, os.Stdout)
	return h
}

// SetIO redirects input and output.
func (h *InputHandler) SetIO(in io.Reader, out io.Writer) {
	h.in = in
	h.out = out
	h.logger = logger.NewWithConfig(out, "", log.GetLevel(), false, false, log.TextFormatter)
}

// SetDictionaryFile sets where :save writes when no path is given.
func (h *InputHandler) SetDictionaryFile(path string, format dictionary.FileFormat, delim string) {
	h.savePath = path
	h.saveFormat = format
	if delim != "" {
		h.delimiter = delim
	}
}

// Start runs the loop until :quit or the end of input.
func (h *InputHandler) Start() error {
	h.logger.Print("WordSuggest CLI [BETA]")
	h.logger.Print("type a prefix and press Enter to see suggestions, :help for commands (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if err := h.handleCommand(line[1:]); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				h.logger.Errorf("%v", err)
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleInput validates the prefix, then prints prefix suggestions or, when none
// exist, fuzzy corrections.
func (h *InputHandler) handleInput(prefix string) {
	n := utils.RuneLen(prefix)
	if n < h.minPrefixLength {
		h.logger.Errorf("Prefix too short: %s", prefix)
		return
	}
	if h.maxPrefixLength > 0 && n > h.maxPrefixLength {
		h.logger.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.logger.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	lower, caps := utils.ProcessCapitals(prefix)
	result := h.completer.SuggestionsWithSpellCheck(lower, h.suggestLimit, -1)
	log.Debug("Processed query", "prefix", prefix, "took", result.QueryTime, "cached", result.FromCache)

	if len(result.Suggestions) == 0 {
		h.logger.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	if result.SpellCorrected {
		h.logger.Printf("Did you mean '%s'?", utils.ApplyCapitals(result.DidYouMean, caps))
	} else {
		h.logger.Printf("Found %d suggestions for prefix '%s':", len(result.Suggestions), prefix)
	}
	printSuggestions(h.out, result.Suggestions, caps)

	if h.showTiming {
		source := "trie"
		switch {
		case result.FromCache:
			source = "cache"
		case result.SpellCorrected:
			source = "spell check"
		}
		h.logger.Printf("took %v (%s)", result.QueryTime, source)
	}
}

func (h *InputHandler) handleCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("empty command, try :help")
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return errQuit
	case "h", "help":
		printHelp(h.out)
	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: :add <word> [frequency]")
		}
		freq := 1
		if len(args) > 1 {
			f, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid frequency %q: %w", args[1], err)
			}
			freq = f
		}
		h.report(h.completer.AddWord(args[0], freq), "added %s", args[0])
	case "del", "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: :del <word>")
		}
		h.report(h.completer.DeleteWord(args[0]), "deleted %s", args[0])
	case "inc":
		if len(args) < 1 {
			return fmt.Errorf("usage: :inc <word> [amount]")
		}
		amount := 1
		if len(args) > 1 {
			a, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			amount = a
		}
		h.report(h.completer.IncrementFrequency(args[0], amount), "incremented %s", args[0])
	case "has":
		if len(args) != 1 {
			return fmt.Errorf("usage: :has <word>")
		}
		h.logger.Printf("%s: %t", args[0], h.completer.SearchWord(args[0]))
	case "fix":
		if len(args) != 1 {
			return fmt.Errorf("usage: :fix <word>")
		}
		h.corrections(args[0])
	case "stats":
		printStatistics(h.out, h.completer.Statistics())
	case "keys":
		keys := h.completer.CachedQueries()
		h.logger.Printf("%d cached queries", len(keys))
		for _, k := range keys {
			fmt.Fprintln(h.out, "  "+k)
		}
	case "clear":
		h.completer.ClearCache()
		h.logger.Print("cache cleared")
	case "reset":
		h.completer.ResetStatistics()
		h.logger.Print("statistics reset")
	case "bench":
		n := 1000
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("usage: :bench [queries]")
			}
			n = v
		}
		h.benchmark(n)
	case "save":
		return h.save(args)
	default:
		return fmt.Errorf("unknown command :%s, try :help", cmd)
	}
	return nil
}

func (h *InputHandler) report(ok bool, format string, args ...any) {
	if !ok {
		h.logger.Warnf("refused: "+format, args...)
		return
	}
	h.logger.Printf(format, args...)
}

// corrections scores every word against word and prints the closest ones.
func (h *InputHandler) corrections(word string) {
	words := h.completer.Words()
	entries := make([]spell.Entry, len(words))
	for i, w := range words {
		entries[i] = spell.Entry{Word: w.Word, Frequency: w.Frequency}
	}

	filter := utils.NewSuggestionFilter(word)
	var out []spell.Correction
	for _, c := range spell.SuggestCorrections(word, spell.NewDictionary(entries), 0.5, h.suggestLimit+1) {
		if len(out) < h.suggestLimit && filter.ShouldInclude(c.Word) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		h.logger.Warnf("No corrections for '%s'", word)
		return
	}
	printCorrections(h.out, out)
}

// benchmark replays prefixes of stored words, first with an empty cache and then
// cached, and prints both timings.
func (h *InputHandler) benchmark(n int) {
	words := h.completer.Words()
	if len(words) == 0 {
		h.logger.Warn("Dictionary is empty")
		return
	}

	prefixes := make([]string, n)
	for i := range prefixes {
		w := []rune(words[i%len(words)].Word)
		prefixes[i] = string(w[:min(3, len(w))])
	}

	h.completer.ClearCache()
	run := func() time.Duration {
		start := time.Now()
		for _, p := range prefixes {
			h.completer.Suggestions(p, h.suggestLimit, true)
		}
		return time.Since(start)
	}
	cold := run()
	warm := run()
	printBenchmark(h.out, n, cold, warm)
}

func (h *InputHandler) save(args []string) error {
	path, format := h.savePath, h.saveFormat
	if len(args) > 0 {
		path, format = args[0], dictionary.FormatUnknown
	}
	if path == "" {
		return fmt.Errorf("usage: :save <path>")
	}

	words := h.completer.Words()
	if err := dictionary.Save(path, words, format, h.delimiter); err != nil {
		return err
	}
	h.logger.Printf("saved %s words to %s", utils.FormatWithCommas(len(words)), path)
	return nil
}
