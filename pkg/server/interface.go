/*
Package server implements msgpack IPC for the suggestion engine.

The server reads a stream of msgpack encoded requests from stdin and writes one
msgpack response per request to stdout. Logs go to stderr so they never mix with
the stream. Requests are processed synchronously in arrival order.

# IPC

Every request carries an ID, echoed in the response. A request without an ID gets
a generated UUID. The action field picks the operation; it defaults to "complete":

	{"id": "req_001", "p": "ame", "l": 24}

The server responds with suggestions ranked by frequency. Suggestions keep the
capitalization of the prefix, and "t" is the time taken in microseconds:

	{"id": "req_001", "s": [{"w": "amenity", "r": 1, "f": 870}, {"w": "america", "r": 2, "f": 850}], "c": 2, "t": 145}

When nothing starts with the prefix the engine falls back to fuzzy matching; the
response then sets "sc" and the best match in "d". Set "nf" to skip the fallback.

Corrections score every word by similarity to "w":

	{"id": "c1", "action": "correct", "w": "teh", "l": 5}

Dictionary and engine management:

	{"id": "a1", "action": "add", "w": "gopher", "f": 120}
	{"id": "a2", "action": "update", "w": "gopher", "f": 90}
	{"id": "a3", "action": "increment", "w": "gopher", "f": 5}
	{"id": "a4", "action": "delete", "w": "gopher"}
	{"id": "a5", "action": "has", "w": "gopher"}
	{"id": "a6", "action": "stats"}
	{"id": "a7", "action": "clear_cache"}
	{"id": "a8", "action": "reset_stats"}
	{"id": "a9", "action": "config", "max_limit": 30, "enable_filter": false}
	{"id": "a10", "action": "health"}

Failures are reported as CompletionError with an HTTP like code.
*/
package server

// Request is the envelope for every action. Fields not used by an action are ignored.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`

	// complete, correct
	Prefix  string `msgpack:"p,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
	NoFuzzy bool   `msgpack:"nf,omitempty"`

	// dictionary management
	Word      string `msgpack:"w,omitempty"`
	Frequency int    `msgpack:"f,omitempty"`

	// config
	MaxLimit     *int  `msgpack:"max_limit,omitempty"`
	EnableFilter *bool `msgpack:"enable_filter,omitempty"`
}

// CompletionSuggestion - one ranked suggestion
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Rank      uint16 `msgpack:"r"`
	Frequency int    `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID             string                 `msgpack:"id"`
	Suggestions    []CompletionSuggestion `msgpack:"s"`
	Count          int                    `msgpack:"c"`
	TimeTaken      int64                  `msgpack:"t"`
	DidYouMean     string                 `msgpack:"d,omitempty"`
	SpellCorrected bool                   `msgpack:"sc,omitempty"`
	FromCache      bool                   `msgpack:"fc,omitempty"`
}

// CorrectionSuggestion - one scored correction
type CorrectionSuggestion struct {
	Word       string  `msgpack:"w"`
	Frequency  int     `msgpack:"f"`
	Similarity float64 `msgpack:"sim"`
}

// CorrectionResponse - response to "correct"
type CorrectionResponse struct {
	ID          string                 `msgpack:"id"`
	Corrections []CorrectionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// ActionResponse answers dictionary, cache and config actions. OK carries the
// boolean result of the action (word accepted, word present, ...).
type ActionResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	OK     bool   `msgpack:"ok"`
}

// StatsResponse - engine statistics
type StatsResponse struct {
	ID                string  `msgpack:"id"`
	Status            string  `msgpack:"status"`
	Words             int     `msgpack:"words"`
	Nodes             int     `msgpack:"nodes"`
	CacheCapacity     int     `msgpack:"cache_capacity"`
	CacheSize         int     `msgpack:"cache_size"`
	CacheHits         uint64  `msgpack:"cache_hits"`
	CacheMisses       uint64  `msgpack:"cache_misses"`
	CacheEvictions    uint64  `msgpack:"cache_evictions"`
	CacheHitRate      float64 `msgpack:"cache_hit_rate"`
	CacheUtilization  float64 `msgpack:"cache_utilization"`
	TotalQueries      uint64  `msgpack:"total_queries"`
	AvgQueryTime      int64   `msgpack:"avg_query_us"`
	SpellCheckEnabled bool    `msgpack:"spell_check"`
}

// CompletionError holds basic error information for any failed request
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
