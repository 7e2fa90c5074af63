package server

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordsuggest/pkg/config"
	"github.com/bastiangx/wordsuggest/pkg/suggest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestCompleter(t *testing.T) *suggest.Engine {
	t.Helper()
	engine, err := suggest.NewEngine()
	require.NoError(t, err)
	engine.AddWordsBulk([]suggest.Entry{
		{Word: "algorithm", Frequency: 100},
		{Word: "algebra", Frequency: 70},
		{Word: "data", Frequency: 95},
		{Word: "database", Frequency: 90},
		{Word: "databases", Frequency: 50},
	})
	return engine
}

// serve runs the server over an in-memory stream and returns a decoder positioned
// after the ready message.
func serve(t *testing.T, completer suggest.Completer, cfg *config.Config, configPath string, reqs ...Request) (*msgpack.Decoder, error) {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range reqs {
		require.NoError(t, enc.Encode(req))
	}

	err := NewServerWithIO(completer, cfg, configPath, &in, &out).Start()

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready["status"])
	return dec, err
}

func decode[T any](t *testing.T, dec *msgpack.Decoder) T {
	t.Helper()
	var v T
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestCompleteRoundTrip(t *testing.T) {
	dec, err := serve(t, newTestCompleter(t), nil, "",
		Request{ID: "r1", Prefix: "alg", Limit: 5},
		Request{Prefix: "Dat", Limit: 1},
		Request{ID: "r3", Action: "complete", Prefix: "algoritm"},
		Request{ID: "r4", Prefix: "ALG", Limit: 1},
		Request{ID: "r5", Prefix: "alg", Limit: 5},
	)
	require.NoError(t, err)

	resp := decode[CompletionResponse](t, dec)
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []CompletionSuggestion{
		{Word: "algorithm", Rank: 1, Frequency: 100},
		{Word: "algebra", Rank: 2, Frequency: 70},
	}, resp.Suggestions)
	assert.False(t, resp.SpellCorrected)

	resp = decode[CompletionResponse](t, dec)
	_, parseErr := uuid.Parse(resp.ID)
	assert.NoError(t, parseErr, "missing ids are generated")
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Data", resp.Suggestions[0].Word)

	resp = decode[CompletionResponse](t, dec)
	assert.Equal(t, "r3", resp.ID)
	assert.True(t, resp.SpellCorrected)
	assert.Equal(t, "algorithm", resp.DidYouMean)

	resp = decode[CompletionResponse](t, dec)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "ALGORITHM", resp.Suggestions[0].Word)

	resp = decode[CompletionResponse](t, dec)
	assert.True(t, resp.FromCache)
}

func TestCompleteNoFuzzy(t *testing.T) {
	dec, err := serve(t, newTestCompleter(t), nil, "",
		Request{ID: "n1", Prefix: "algoritm", NoFuzzy: true},
	)
	require.NoError(t, err)

	resp := decode[CompletionResponse](t, dec)
	assert.Zero(t, resp.Count)
	assert.False(t, resp.SpellCorrected)
	assert.Empty(t, resp.DidYouMean)
}

func TestCompleteValidation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxPrefix = 5
	cfg.Server.MinPrefix = 2
	cfg.Server.MaxLimit = 1

	dec, err := serve(t, newTestCompleter(t), cfg, "",
		Request{ID: "v1"},
		Request{ID: "v2", Prefix: "a"},
		Request{ID: "v3", Prefix: "abcdefg"},
		Request{ID: "v4", Prefix: "1234"},
		Request{ID: "v5", Prefix: "dddd"},
		Request{ID: "v6", Prefix: "da", Limit: 10},
	)
	require.NoError(t, err)

	for _, id := range []string{"v1", "v2", "v3"} {
		e := decode[CompletionError](t, dec)
		assert.Equal(t, id, e.ID)
		assert.Equal(t, 400, e.Code)
		assert.NotEmpty(t, e.Error)
	}

	for _, id := range []string{"v4", "v5"} {
		resp := decode[CompletionResponse](t, dec)
		assert.Equal(t, id, resp.ID)
		assert.Zero(t, resp.Count, "filtered input returns nothing")
	}

	resp := decode[CompletionResponse](t, dec)
	assert.Equal(t, 1, resp.Count, "limit is clamped to max_limit")
}

func TestDictionaryActions(t *testing.T) {
	engine := newTestCompleter(t)
	dec, err := serve(t, engine, nil, "",
		Request{ID: "a1", Action: "add", Word: "gopher", Frequency: 120},
		Request{ID: "a2", Action: "has", Word: "gopher"},
		Request{ID: "a3", Prefix: "goph"},
		Request{ID: "a4", Action: "increment", Word: "gopher", Frequency: 5},
		Request{ID: "a5", Action: "update", Word: "gopher", Frequency: -1},
		Request{ID: "a6", Action: "delete", Word: "gopher"},
		Request{ID: "a7", Action: "has", Word: "gopher"},
		Request{ID: "a8", Action: "add"},
		Request{ID: "a9", Action: "fly"},
	)
	require.NoError(t, err)

	assert.Equal(t, ActionResponse{ID: "a1", Status: "ok", OK: true}, decode[ActionResponse](t, dec))
	assert.True(t, decode[ActionResponse](t, dec).OK)

	resp := decode[CompletionResponse](t, dec)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, CompletionSuggestion{Word: "gopher", Rank: 1, Frequency: 120}, resp.Suggestions[0])

	assert.True(t, decode[ActionResponse](t, dec).OK)
	assert.False(t, decode[ActionResponse](t, dec).OK, "negative frequency is refused")
	assert.True(t, decode[ActionResponse](t, dec).OK)
	assert.False(t, decode[ActionResponse](t, dec).OK)

	missing := decode[CompletionError](t, dec)
	assert.Equal(t, "a8", missing.ID)
	assert.Equal(t, 400, missing.Code)

	unknown := decode[CompletionError](t, dec)
	assert.Equal(t, "a9", unknown.ID)
	assert.Contains(t, unknown.Error, "fly")

	assert.False(t, engine.SearchWord("gopher"))
}

func TestCorrect(t *testing.T) {
	dec, err := serve(t, newTestCompleter(t), nil, "",
		Request{ID: "c1", Action: "correct", Word: "databse", Limit: 5},
		Request{ID: "c2", Action: "correct", Word: "database"},
		Request{ID: "c3", Action: "correct"},
	)
	require.NoError(t, err)

	resp := decode[CorrectionResponse](t, dec)
	assert.Equal(t, "c1", resp.ID)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "database", resp.Corrections[0].Word)
	assert.InDelta(t, 0.875, resp.Corrections[0].Similarity, 1e-9)
	assert.Equal(t, "databases", resp.Corrections[1].Word)

	resp = decode[CorrectionResponse](t, dec)
	require.Equal(t, 1, resp.Count, "the word is not its own correction")
	assert.Equal(t, "databases", resp.Corrections[0].Word)

	assert.Equal(t, 400, decode[CompletionError](t, dec).Code)
}

func TestStatsAndCache(t *testing.T) {
	dec, err := serve(t, newTestCompleter(t), nil, "",
		Request{ID: "s1", Prefix: "data"},
		Request{ID: "s2", Prefix: "data"},
		Request{ID: "s3", Action: "stats"},
		Request{ID: "s4", Action: "clear_cache"},
		Request{ID: "s5", Action: "reset_stats"},
		Request{ID: "s6", Action: "stats"},
		Request{ID: "s7", Action: "health"},
	)
	require.NoError(t, err)

	decode[CompletionResponse](t, dec)
	assert.True(t, decode[CompletionResponse](t, dec).FromCache)

	stats := decode[StatsResponse](t, dec)
	assert.Equal(t, 5, stats.Words)
	assert.Equal(t, uint64(1), stats.CacheHits)
	assert.Equal(t, uint64(1), stats.CacheMisses)
	assert.Equal(t, 1, stats.CacheSize)
	assert.Equal(t, uint64(2), stats.TotalQueries)
	assert.True(t, stats.SpellCheckEnabled)

	assert.True(t, decode[ActionResponse](t, dec).OK)
	assert.True(t, decode[ActionResponse](t, dec).OK)

	stats = decode[StatsResponse](t, dec)
	assert.Zero(t, stats.CacheSize)
	assert.Zero(t, stats.CacheHits)
	assert.Zero(t, stats.TotalQueries)

	assert.Equal(t, "ok", decode[ActionResponse](t, dec).Status)
}

func TestConfigAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	limit := 2
	off := false
	bad := 0

	dec, err := serve(t, newTestCompleter(t), cfg, path,
		Request{ID: "k1", Action: "config", MaxLimit: &limit, EnableFilter: &off},
		Request{ID: "k2", Prefix: "da", Limit: 10},
		Request{ID: "k3", Action: "config", MaxLimit: &bad},
	)
	require.NoError(t, err)

	assert.True(t, decode[ActionResponse](t, dec).OK)
	assert.Equal(t, 2, decode[CompletionResponse](t, dec).Count)
	assert.Equal(t, 400, decode[CompletionError](t, dec).Code)

	saved, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Server.MaxLimit)
	assert.False(t, saved.Server.EnableFilter)
}

func TestMalformedRequestStopsServer(t *testing.T) {
	var in, out bytes.Buffer
	in.Write([]byte{0x01})

	err := NewServerWithIO(newTestCompleter(t), nil, "", &in, &out).Start()
	require.Error(t, err)

	dec := msgpack.NewDecoder(&out)
	decode[map[string]string](t, dec)
	assert.Equal(t, 400, decode[CompletionError](t, dec).Code)
}

func TestEmptyInput(t *testing.T) {
	_, err := serve(t, newTestCompleter(t), nil, "")
	assert.NoError(t, err)
}
