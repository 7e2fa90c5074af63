// Package dictionary reads and writes word lists for the suggestion engine.
//
// Three on-disk formats are understood: delimited text (word<delim>frequency per line),
// a compact binary format carrying explicit frequencies, and the ranked chunk files
// (dict_0001.bin, dict_0002.bin, ...) where frequency is derived from rank.
package dictionary

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordsuggest/pkg/trie"
	"github.com/charmbracelet/log"
)

// Entry is a word and its frequency.
type Entry = trie.Entry

// FileFormat represents the dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // word<delim>frequency lines
	FormatBinary             // int32 count, then uint16 length, word bytes, uint32 frequency
	FormatChunk              // directory of ranked dict_NNNN.bin chunks
)

func (f FileFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	case FormatChunk:
		return "chunk"
	default:
		return "unknown"
	}
}

var extensions = map[string]FileFormat{
	".txt":  FormatText,
	".tsv":  FormatText,
	".dict": FormatText,
	".bin":  FormatBinary,
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensions[ext]; ok {
		return format, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", path)
}

// ParseFormat maps a config value to a format. "auto" and "" return FormatUnknown so
// the caller falls back to DetectFormat.
func ParseFormat(name string) (FileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatUnknown, nil
	case "text", "txt", "tsv":
		return FormatText, nil
	case "binary", "bin":
		return FormatBinary, nil
	case "chunk", "chunks":
		return FormatChunk, nil
	}
	return FormatUnknown, fmt.Errorf("unknown dictionary format %q", name)
}

// Load reads path in the given format, detecting it from the extension when format is
// FormatUnknown. delim only applies to text files.
func Load(path string, format FileFormat, delim string) ([]Entry, error) {
	if format == FormatUnknown {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}
	log.Debugf("Loading %s dictionary from %s", format, path)

	switch format {
	case FormatText:
		return LoadTextFile(path, delim)
	case FormatBinary:
		return LoadBinaryFile(path)
	case FormatChunk:
		return LoadChunks(path, 0)
	}
	return nil, fmt.Errorf("unsupported dictionary format %s", format)
}

// Save writes entries to path in the given format, detecting it from the extension when
// format is FormatUnknown.
func Save(path string, entries []Entry, format FileFormat, delim string) error {
	if format == FormatUnknown {
		detected, err := DetectFormat(path)
		if err != nil {
			return err
		}
		format = detected
	}

	switch format {
	case FormatText:
		return SaveTextFile(path, entries, delim)
	case FormatBinary:
		return SaveBinaryFile(path, entries)
	}
	return fmt.Errorf("cannot save dictionary as %s", format)
}
