package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/bastiangx/wordsuggest/pkg/spell"
	"github.com/bastiangx/wordsuggest/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheynewallace/tabby"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

func newTable(w io.Writer) *tabby.Tabby {
	return tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
}

func printSuggestions(w io.Writer, suggestions []suggest.Suggestion, caps *utils.CapitalInfo) {
	table := newTable(w)
	table.AddHeader("#", "Word", "Frequency")
	for i, s := range suggestions {
		word := utils.ApplyCapitals(s.Word, caps)
		table.AddLine(i+1, wordStyle.Render(word), utils.FormatWithCommas(s.Frequency))
	}
	table.Print()
}

func printCorrections(w io.Writer, corrections []spell.Correction) {
	table := newTable(w)
	table.AddHeader("#", "Correction", "Similarity", "Frequency")
	for i, c := range corrections {
		table.AddLine(i+1, wordStyle.Render(c.Word), strconv.FormatFloat(c.Similarity, 'f', 3, 64), utils.FormatWithCommas(c.Frequency))
	}
	table.Print()
}

func printStatistics(w io.Writer, st suggest.Statistics) {
	table := newTable(w)
	table.AddHeader("Statistic", "Value")
	table.AddLine("words", utils.FormatWithCommas(st.TotalWords))
	table.AddLine("trie nodes", utils.FormatWithCommas(st.TotalNodes))
	table.AddLine("cache size", fmt.Sprintf("%d / %d", st.CacheSize, st.CacheCapacity))
	table.AddLine("cache utilization", fmt.Sprintf("%.1f%%", st.CacheUtilization))
	table.AddLine("cache hits", st.CacheHits)
	table.AddLine("cache misses", st.CacheMisses)
	table.AddLine("cache hit rate", fmt.Sprintf("%.1f%%", st.CacheHitRate))
	table.AddLine("cache evictions", st.CacheEvictions)
	table.AddLine("queries", st.TotalQueries)
	table.AddLine("avg query time", st.AvgQueryTime)
	table.AddLine("total query time", st.TotalQueryTime)
	table.AddLine("spell check", st.SpellCheckEnabled)
	table.Print()
}

func printBenchmark(w io.Writer, n int, cold, warm time.Duration) {
	table := newTable(w)
	table.AddHeader("Run", "Queries", "Total", "Per query")
	table.AddLine("uncached", n, cold, cold/time.Duration(n))
	table.AddLine("cached", n, warm, warm/time.Duration(n))
	if warm > 0 {
		table.AddLine("speedup", "", fmt.Sprintf("%.1fx", float64(cold)/float64(warm)), "")
	}
	table.Print()
}

func printHelp(w io.Writer) {
	table := newTable(w)
	table.AddHeader("Command", "Action")
	table.AddLine("<prefix>", "suggestions, spell checked when nothing matches")
	table.AddLine(":add <word> [freq]", "add or overwrite a word")
	table.AddLine(":del <word>", "delete a word")
	table.AddLine(":inc <word> [n]", "raise a word's frequency")
	table.AddLine(":has <word>", "exact lookup")
	table.AddLine(":fix <word>", "scored corrections")
	table.AddLine(":stats", "engine statistics")
	table.AddLine(":keys", "cached queries, most recent first")
	table.AddLine(":clear", "clear the query cache")
	table.AddLine(":reset", "reset statistics")
	table.AddLine(":bench [n]", "time n prefix queries")
	table.AddLine(":save [path]", "write the dictionary")
	table.AddLine(":quit", "exit")
	table.Print()
}
