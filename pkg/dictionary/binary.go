package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/charmbracelet/log"
)

// LoadBinary reads the binary format: a little endian int32 word count, then for each
// word a uint16 byte length, the word bytes and a uint32 frequency.
func LoadBinary(r io.Reader) ([]Entry, error) {
	reader := bufio.NewReader(r)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("failed to read dictionary header: %w", err)
	}
	if total < 0 {
		return nil, fmt.Errorf("invalid word count %d (negative)", total)
	}

	entries := make([]Entry, 0, min(int(total), 1<<16))
	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			return entries, fmt.Errorf("failed to read word length of entry %d: %w", i, err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return entries, fmt.Errorf("failed to read word of entry %d: %w", i, err)
		}

		var frequency uint32
		if err := binary.Read(reader, binary.LittleEndian, &frequency); err != nil {
			return entries, fmt.Errorf("failed to read frequency of entry %d: %w", i, err)
		}

		entries = append(entries, Entry{Word: string(wordBytes), Frequency: int(frequency)})
	}
	return entries, nil
}

// SaveBinary writes entries in the format read by LoadBinary, preserving their order.
// Negative frequencies are written as 0.
func SaveBinary(w io.Writer, entries []Entry) error {
	if len(entries) > math.MaxInt32 {
		return fmt.Errorf("too many entries for binary dictionary: %d", len(entries))
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return fmt.Errorf("failed to write dictionary header: %w", err)
	}

	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return fmt.Errorf("word too long for binary dictionary: %d bytes", len(e.Word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return fmt.Errorf("failed to write word length: %w", err)
		}
		if _, err := bw.WriteString(e.Word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
		frequency := uint32(0)
		switch {
		case e.Frequency <= 0:
		case uint64(e.Frequency) > math.MaxUint32:
			frequency = math.MaxUint32
		default:
			frequency = uint32(e.Frequency)
		}
		if err := binary.Write(bw, binary.LittleEndian, frequency); err != nil {
			return fmt.Errorf("failed to write frequency: %w", err)
		}
	}
	return bw.Flush()
}

// LoadBinaryFile opens path and decodes it with LoadBinary.
func LoadBinaryFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()
	return LoadBinary(file)
}

// SaveBinaryFile creates (or truncates) path and writes entries with SaveBinary.
func SaveBinaryFile(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dictionary %s: %w", path, err)
	}
	if err := SaveBinary(file, entries); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ChunkInfo describes one ranked chunk file.
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// AvailableChunks lists the dict_NNNN.bin files in dir ordered by chunk id.
func AvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadChunks reads ranked chunks from dir in chunk order until maxWords entries are
// collected (0 means all). Chunk entries store a uint16 rank instead of a frequency;
// rank 1 maps to frequency 65535, rank 2 to 65534 and so on.
func LoadChunks(dir string, maxWords int) ([]Entry, error) {
	chunks, err := AvailableChunks(dir)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}

	var entries []Entry
	for _, chunk := range chunks {
		remaining := -1
		if maxWords > 0 {
			remaining = maxWords - len(entries)
			if remaining <= 0 {
				break
			}
		}
		loaded, err := loadChunk(chunk.Filename, remaining)
		if err != nil {
			return entries, err
		}
		entries = append(entries, loaded...)
		log.Debugf("Chunk %d loaded: %d words", chunk.ChunkID, len(loaded))
	}
	return entries, nil
}

// loadChunk reads at most limit entries (all when limit < 0).
func loadChunk(filename string, limit int) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}

	var entries []Entry
	for i := 0; i < int(total) && (limit < 0 || len(entries) < limit); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return entries, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return entries, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return entries, fmt.Errorf("failed to read rank: %w", err)
		}

		entries = append(entries, Entry{Word: string(wordBytes), Frequency: 65536 - int(rank)})
	}
	return entries, nil
}

// SaveChunk writes words as a ranked chunk file; the first word gets rank 1.
func SaveChunk(path string, words []string) error {
	if len(words) > math.MaxUint16 {
		return fmt.Errorf("too many words for one chunk: %d", len(words))
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk %s: %w", path, err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	ranks := utils.CreateRankList(len(words))
	for i, w := range words {
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(w))); err != nil {
			return err
		}
		if _, err := bw.WriteString(w); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, ranks[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
