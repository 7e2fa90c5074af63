package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordsuggest/internal/logger"
	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/bastiangx/wordsuggest/pkg/config"
	"github.com/bastiangx/wordsuggest/pkg/spell"
	"github.com/bastiangx/wordsuggest/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// configCheckInterval is how many requests pass between config file checks.
const configCheckInterval = 100

// Server handles the IPC for word suggestions
type Server struct {
	completer  suggest.Completer
	config     *config.Config
	configPath string

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	logger  *log.Logger

	requestCount int
	configMod    time.Time
}

// NewServer creates a server using stdin/stdout. configPath may be empty, in which
// case config changes are kept in memory only.
func NewServer(completer suggest.Completer, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(completer, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(completer suggest.Completer, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	s := &Server{
		completer:  completer,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     bw,
		encoder:    msgpack.NewEncoder(bw),
		logger:     logger.New("server"),
	}
	if info, err := os.Stat(configPath); configPath != "" && err == nil {
		s.configMod = info.ModTime()
	}
	return s
}

// Start signals readiness and serves requests until the input ends. A clean end of
// input returns nil; a malformed message is answered with an error and ends the loop,
// since the stream cannot be resynchronized.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	s.sendResponse(map[string]string{"status": "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	s.requestCount++
	if s.requestCount%configCheckInterval == 0 {
		s.reloadConfigIfChanged()
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Action {
	case "", "complete":
		s.handleComplete(req)
	case "correct":
		s.handleCorrect(req)
	case "add":
		s.withWord(req, func() bool { return s.completer.AddWord(req.Word, req.Frequency) })
	case "update":
		s.withWord(req, func() bool { return s.completer.UpdateFrequency(req.Word, req.Frequency) })
	case "increment":
		s.withWord(req, func() bool { return s.completer.IncrementFrequency(req.Word, req.Frequency) })
	case "delete":
		s.withWord(req, func() bool { return s.completer.DeleteWord(req.Word) })
	case "has":
		s.withWord(req, func() bool { return s.completer.SearchWord(req.Word) })
	case "stats":
		s.handleStats(req)
	case "clear_cache":
		s.completer.ClearCache()
		s.sendResponse(ActionResponse{ID: req.ID, Status: "ok", OK: true})
	case "reset_stats":
		s.completer.ResetStatistics()
		s.sendResponse(ActionResponse{ID: req.ID, Status: "ok", OK: true})
	case "config":
		s.handleConfig(req)
	case "health":
		s.sendResponse(ActionResponse{ID: req.ID, Status: "ok", OK: true})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

// validatePrefix applies the [server] limits. It returns a non-empty message when the
// prefix is rejected.
func (s *Server) validatePrefix(prefix string) string {
	cfg := s.config.Server
	n := utils.RuneLen(prefix)
	switch {
	case prefix == "":
		return "missing prefix"
	case n < cfg.MinPrefix:
		return fmt.Sprintf("prefix must be at least %d characters", cfg.MinPrefix)
	case cfg.MaxPrefix > 0 && n > cfg.MaxPrefix:
		return fmt.Sprintf("prefix exceeds maximum length of %d characters", cfg.MaxPrefix)
	}
	return ""
}

// limit clamps a requested limit to max_limit. Zero or less is left for the engine
// to replace with its default.
func (s *Server) limit(requested int) int {
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && requested > maxLimit {
		return maxLimit
	}
	return requested
}

func (s *Server) handleComplete(req Request) {
	if msg := s.validatePrefix(req.Prefix); msg != "" {
		s.logger.Debugf("Rejected prefix %q: %s", req.Prefix, msg)
		s.sendError(req.ID, msg, 400)
		return
	}

	start := time.Now()
	if s.config.Server.EnableFilter && !utils.IsValidInput(req.Prefix) {
		s.logger.Debugf("Filtered prefix %q", req.Prefix)
		s.sendResponse(CompletionResponse{
			ID:          req.ID,
			Suggestions: []CompletionSuggestion{},
			TimeTaken:   time.Since(start).Microseconds(),
		})
		return
	}

	prefix, caps := utils.ProcessCapitals(req.Prefix)
	limit := s.limit(req.Limit)

	var result suggest.Result
	if req.NoFuzzy {
		result = s.completer.Suggestions(prefix, limit, true)
	} else {
		result = s.completer.SuggestionsWithSpellCheck(prefix, limit, -1)
	}

	suggestions := make([]CompletionSuggestion, len(result.Suggestions))
	ranks := utils.CreateRankList(len(result.Suggestions))
	for i, sg := range result.Suggestions {
		suggestions[i] = CompletionSuggestion{
			Word:      utils.ApplyCapitals(sg.Word, caps),
			Rank:      ranks[i],
			Frequency: sg.Frequency,
		}
	}

	resp := CompletionResponse{
		ID:             req.ID,
		Suggestions:    suggestions,
		Count:          len(suggestions),
		TimeTaken:      time.Since(start).Microseconds(),
		SpellCorrected: result.SpellCorrected,
		FromCache:      result.FromCache,
	}
	if result.DidYouMean != "" {
		resp.DidYouMean = utils.ApplyCapitals(result.DidYouMean, caps)
	}
	s.sendResponse(resp)
}

// handleCorrect scores the whole dictionary against the word. The word itself is
// never returned as its own correction.
func (s *Server) handleCorrect(req Request) {
	word := req.Word
	if word == "" {
		word = req.Prefix
	}
	if msg := s.validatePrefix(word); msg != "" {
		s.sendError(req.ID, msg, 400)
		return
	}

	start := time.Now()
	limit := s.limit(req.Limit)
	if limit < 1 {
		limit = s.config.Engine.DefaultLimit
	}

	words := s.completer.Words()
	entries := make([]spell.Entry, len(words))
	for i, w := range words {
		entries[i] = spell.Entry{Word: w.Word, Frequency: w.Frequency}
	}
	// one extra in case the word itself scores
	candidates := spell.SuggestCorrections(word, spell.NewDictionary(entries), s.config.Server.CorrectionThreshold, limit+1)

	filter := utils.NewSuggestionFilter(word)
	corrections := make([]CorrectionSuggestion, 0, limit)
	for _, c := range candidates {
		if len(corrections) == limit {
			break
		}
		if !filter.ShouldInclude(c.Word) {
			continue
		}
		corrections = append(corrections, CorrectionSuggestion{Word: c.Word, Frequency: c.Frequency, Similarity: c.Similarity})
	}

	s.sendResponse(CorrectionResponse{
		ID:          req.ID,
		Corrections: corrections,
		Count:       len(corrections),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) withWord(req Request, action func() bool) {
	if req.Word == "" {
		s.sendError(req.ID, fmt.Sprintf("missing word for %s", req.Action), 400)
		return
	}
	ok := action()
	s.logger.Debug("Dictionary action", "action", req.Action, "word", req.Word, "ok", ok)
	s.sendResponse(ActionResponse{ID: req.ID, Status: "ok", OK: ok})
}

func (s *Server) handleStats(req Request) {
	st := s.completer.Statistics()
	s.sendResponse(StatsResponse{
		ID:                req.ID,
		Status:            "ok",
		Words:             st.TotalWords,
		Nodes:             st.TotalNodes,
		CacheCapacity:     st.CacheCapacity,
		CacheSize:         st.CacheSize,
		CacheHits:         st.CacheHits,
		CacheMisses:       st.CacheMisses,
		CacheEvictions:    st.CacheEvictions,
		CacheHitRate:      st.CacheHitRate,
		CacheUtilization:  st.CacheUtilization,
		TotalQueries:      st.TotalQueries,
		AvgQueryTime:      st.AvgQueryTime.Microseconds(),
		SpellCheckEnabled: st.SpellCheckEnabled,
	})
}

func (s *Server) handleConfig(req Request) {
	if req.MaxLimit != nil && *req.MaxLimit < 1 {
		s.sendError(req.ID, "max_limit must be positive", 400)
		return
	}
	if err := s.config.UpdateServer(s.configPath, req.MaxLimit, req.EnableFilter); err != nil {
		s.logger.Errorf("Saving config: %v", err)
		s.sendError(req.ID, fmt.Sprintf("saving config: %v", err), 500)
		return
	}
	s.rememberConfigMod()
	s.sendResponse(ActionResponse{ID: req.ID, Status: "ok", OK: true})
}

// reloadConfigIfChanged picks up edits to the [server] section made while running.
// Engine settings need a restart.
func (s *Server) reloadConfigIfChanged() {
	if s.configPath == "" {
		return
	}
	info, err := os.Stat(s.configPath)
	if err != nil || !info.ModTime().After(s.configMod) {
		return
	}

	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.logger.Warnf("Reloading config %s: %v", s.configPath, err)
		return
	}
	s.config.Server = cfg.Server
	s.configMod = info.ModTime()
	s.logger.Debugf("Reloaded server config from %s", s.configPath)
}

func (s *Server) rememberConfigMod() {
	if info, err := os.Stat(s.configPath); s.configPath != "" && err == nil {
		s.configMod = info.ModTime()
	}
}

// sendResponse encodes one response and flushes it so the client sees it immediately.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}
