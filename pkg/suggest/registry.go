package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultLanguage is used when a caller passes an empty language code.
const DefaultLanguage = "en"

// Registry keeps one Engine per language code. Engines are created on first use and
// share the registry's options.
type Registry struct {
	mu      sync.RWMutex
	opts    []Option
	engines map[string]*Engine
}

// NewRegistry creates a registry holding an engine for DefaultLanguage. Option errors
// surface here rather than on the first lookup of another language.
func NewRegistry(opts ...Option) (*Registry, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	return &Registry{
		opts:    opts,
		engines: map[string]*Engine{DefaultLanguage: engine},
	}, nil
}

// Engine returns the engine for lang, creating it if needed.
func (r *Registry) Engine(lang string) (*Engine, error) {
	lang = normalizeLanguage(lang)

	r.mu.RLock()
	engine, ok := r.engines[lang]
	r.mu.RUnlock()
	if ok {
		return engine, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if engine, ok := r.engines[lang]; ok {
		return engine, nil
	}
	engine, err := NewEngine(r.opts...)
	if err != nil {
		return nil, err
	}
	r.engines[lang] = engine
	log.Debugf("Created engine for language %q", lang)
	return engine, nil
}

// Languages returns the codes with an engine, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.engines))
	for lang := range r.engines {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Suggestions queries the engine for lang with spell checking at the default distance.
func (r *Registry) Suggestions(lang, prefix string, k int) (Result, error) {
	engine, err := r.Engine(lang)
	if err != nil {
		return Result{}, err
	}
	return engine.SuggestionsWithSpellCheck(prefix, k, -1), nil
}

// AddWord adds word to the engine for lang.
func (r *Registry) AddWord(lang, word string, frequency int) (bool, error) {
	engine, err := r.Engine(lang)
	if err != nil {
		return false, err
	}
	return engine.AddWord(word, frequency), nil
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
