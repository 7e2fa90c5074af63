package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultDelimiter separates word and frequency in text dictionaries.
const DefaultDelimiter = "\t"

// LoadText parses word<delim>frequency lines. Blank lines and lines starting with '#'
// are skipped; a missing or malformed frequency becomes 1. An empty delim means
// DefaultDelimiter.
func LoadText(r io.Reader, delim string) ([]Entry, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}

	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, delim)
		word := strings.TrimSpace(parts[0])
		if word == "" {
			continue
		}

		frequency := 1
		if len(parts) >= 2 {
			if f, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				frequency = f
			}
		}
		entries = append(entries, Entry{Word: word, Frequency: frequency})
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("reading text dictionary: %w", err)
	}
	return entries, nil
}

// LoadTextFile opens path and parses it with LoadText.
func LoadTextFile(path, delim string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()
	return LoadText(file, delim)
}

// SaveText writes entries sorted by word, one word<delim>frequency line each.
func SaveText(w io.Writer, entries []Entry, delim string) error {
	if delim == "" {
		delim = DefaultDelimiter
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Word < sorted[j].Word
	})

	bw := bufio.NewWriter(w)
	for _, e := range sorted {
		if _, err := fmt.Fprintf(bw, "%s%s%d\n", e.Word, delim, e.Frequency); err != nil {
			return fmt.Errorf("writing text dictionary: %w", err)
		}
	}
	return bw.Flush()
}

// SaveTextFile creates (or truncates) path and writes entries with SaveText.
func SaveTextFile(path string, entries []Entry, delim string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dictionary %s: %w", path, err)
	}
	if err := SaveText(file, entries, delim); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
