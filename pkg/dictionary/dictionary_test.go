package dictionary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"algorithm\t100",
		"  data\t95  ",
		"bare",
		"broken\tlots",
		" \t ",
		"negative\t-3",
	}, "\n")

	entries, err := LoadText(strings.NewReader(input), "")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Word: "algorithm", Frequency: 100},
		{Word: "data", Frequency: 95},
		{Word: "bare", Frequency: 1},
		{Word: "broken", Frequency: 1},
		{Word: "negative", Frequency: -3},
	}, entries)
}

func TestLoadTextCustomDelimiter(t *testing.T) {
	entries, err := LoadText(strings.NewReader("go,42\nrust, 7\n"), ",")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Word: "go", Frequency: 42}, {Word: "rust", Frequency: 7}}, entries)
}

func TestSaveTextSortsByWord(t *testing.T) {
	var buf bytes.Buffer
	err := SaveText(&buf, []Entry{{Word: "zebra", Frequency: 1}, {Word: "apple", Frequency: 9}}, "")
	require.NoError(t, err)
	assert.Equal(t, "apple\t9\nzebra\t1\n", buf.String())
}

func TestTextFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.tsv")
	want := Sample()

	require.NoError(t, Save(path, want, FormatUnknown, ""))
	got, err := Load(path, FormatUnknown, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
}

func TestBinaryRoundTrip(t *testing.T) {
	want := []Entry{
		{Word: "résumé", Frequency: 12},
		{Word: "data", Frequency: 95},
		{Word: "zero", Frequency: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, SaveBinary(&buf, want))
	assert.Equal(t, 4+(2+len("résumé")+4)+(2+4+4)+(2+4+4), buf.Len())

	got, err := LoadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBinaryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.bin")
	require.NoError(t, Save(path, Sample(), FormatUnknown, ""))

	got, err := Load(path, FormatUnknown, "")
	require.NoError(t, err)
	assert.Equal(t, Sample(), got)
}

func TestSaveBinaryClampsNegative(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SaveBinary(&buf, []Entry{{Word: "cold", Frequency: -5}}))
	got, err := LoadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Word: "cold", Frequency: 0}}, got)
}

func TestLoadBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SaveBinary(&buf, []Entry{{Word: "alpha", Frequency: 1}, {Word: "beta", Frequency: 2}}))
	truncated := buf.Bytes()[:buf.Len()-3]

	got, err := LoadBinary(bytes.NewReader(truncated))
	require.Error(t, err)
	assert.Equal(t, []Entry{{Word: "alpha", Frequency: 1}}, got)

	_, err = LoadBinary(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestChunks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveChunk(filepath.Join(dir, "dict_0002.bin"), []string{"delta", "echo"}))
	require.NoError(t, SaveChunk(filepath.Join(dir, "dict_0001.bin"), []string{"alpha", "bravo", "charlie"}))

	chunks, err := AvailableChunks(dir)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].ChunkID)
	assert.Equal(t, 3, chunks[0].WordCount)

	all, err := LoadChunks(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Word: "alpha", Frequency: 65535},
		{Word: "bravo", Frequency: 65534},
		{Word: "charlie", Frequency: 65533},
		{Word: "delta", Frequency: 65535},
		{Word: "echo", Frequency: 65534},
	}, all)

	limited, err := LoadChunks(dir, 4)
	require.NoError(t, err)
	assert.Len(t, limited, 4)
	assert.Equal(t, "delta", limited[3].Word)

	viaLoad, err := Load(dir, FormatChunk, "")
	require.NoError(t, err)
	assert.Len(t, viaLoad, 5)

	_, err = LoadChunks(t.TempDir(), 0)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{"words.txt", FormatText, false},
		{"WORDS.TSV", FormatText, false},
		{"en.dict", FormatText, false},
		{"words.bin", FormatBinary, false},
		{"words.csv", FormatUnknown, true},
		{"words", FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]FileFormat{
		"":       FormatUnknown,
		"auto":   FormatUnknown,
		"TEXT":   FormatText,
		"binary": FormatBinary,
		"chunk":  FormatChunk,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestAssignFrequencies(t *testing.T) {
	words := []string{"the", "database", "elephant", "zoo"}
	got := AssignFrequencies(words)

	assert.Equal(t, []Entry{
		{Word: "the", Frequency: 1000},      // 1000 + 100 capped
		{Word: "database", Frequency: 1000}, // 825 + 200 capped
		{Word: "elephant", Frequency: 650},
		{Word: "zoo", Frequency: 575}, // 475 + 100
	}, got)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "The\na\n\ncode\nWorld\nsearch\n")
	}))
	defer srv.Close()

	entries, err := Download(context.Background(), srv.Client(), srv.URL, 0)
	require.NoError(t, err)
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	assert.Equal(t, []string{"the", "code", "world", "search"}, words)
	assert.Equal(t, 1000, entries[0].Frequency)

	limited, err := Download(context.Background(), srv.Client(), srv.URL, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDownloadErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "a\nb\n")
	}))
	defer empty.Close()

	_, err := Download(context.Background(), notFound.Client(), notFound.URL, 0)
	assert.Error(t, err)

	_, err = Download(context.Background(), empty.Client(), empty.URL, 0)
	assert.True(t, errors.Is(err, ErrNoWords))
}

func TestDownloadAnyFallsBack(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello\nworld\n")
	}))
	defer good.Close()

	entries, src, err := DownloadAny(context.Background(), http.DefaultClient, []string{bad.URL, good.URL}, 10)
	require.NoError(t, err)
	assert.Equal(t, good.URL, src)
	assert.Len(t, entries, 2)

	_, _, err = DownloadAny(context.Background(), http.DefaultClient, []string{bad.URL}, 10)
	assert.Error(t, err)
}

func TestDownloadCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello\n")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := DownloadAny(ctx, srv.Client(), []string{srv.URL, srv.URL}, 10)
	assert.Error(t, err)
}
