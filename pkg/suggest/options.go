package suggest

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordsuggest/pkg/config"
)

// ErrInvalidOption is matched by every engine construction error caused by an option value.
var ErrInvalidOption = errors.New("invalid engine option")

// DefaultOptions are used for anything not overridden by an Option.
var DefaultOptions = Options{
	CacheSize:       1000,
	SpellCheck:      true,
	MaxEditDistance: 2,
	FuzzyMaxWords:   100000,
	DefaultLimit:    10,
}

// Options holds the engine tunables.
type Options struct {
	CacheSize       int  // memoized queries kept
	SpellCheck      bool // fuzzy fallback when a prefix has no completions
	MaxEditDistance int  // used when a query passes a negative distance
	FuzzyMaxWords   int  // fallback is skipped above this dictionary size, 0 disables the bound
	DefaultLimit    int  // used when a query passes k < 1
}

func (o Options) validate() error {
	if o.MaxEditDistance < 0 {
		return fmt.Errorf("%w: max edit distance %d is negative", ErrInvalidOption, o.MaxEditDistance)
	}
	if o.FuzzyMaxWords < 0 {
		return fmt.Errorf("%w: fuzzy max words %d is negative", ErrInvalidOption, o.FuzzyMaxWords)
	}
	if o.DefaultLimit < 1 {
		return fmt.Errorf("%w: default limit %d must be at least 1", ErrInvalidOption, o.DefaultLimit)
	}
	return nil
}

// Option configures an Engine.
type Option interface {
	Apply(options *Options)
}

type funcOption struct {
	f func(options *Options)
}

func (o funcOption) Apply(options *Options) {
	o.f(options)
}

func newFuncOption(f func(options *Options)) Option {
	return funcOption{f: f}
}

func WithCacheSize(size int) Option {
	return newFuncOption(func(options *Options) {
		options.CacheSize = size
	})
}

func WithSpellCheck(enabled bool) Option {
	return newFuncOption(func(options *Options) {
		options.SpellCheck = enabled
	})
}

func WithMaxEditDistance(distance int) Option {
	return newFuncOption(func(options *Options) {
		options.MaxEditDistance = distance
	})
}

// WithFuzzyMaxWords bounds the dictionary size the fuzzy fallback will scan.
func WithFuzzyMaxWords(words int) Option {
	return newFuncOption(func(options *Options) {
		options.FuzzyMaxWords = words
	})
}

func WithDefaultLimit(limit int) Option {
	return newFuncOption(func(options *Options) {
		options.DefaultLimit = limit
	})
}

// optionsFromConfig maps the [engine] config section onto options.
func optionsFromConfig(cfg config.EngineConfig) []Option {
	return []Option{
		WithCacheSize(cfg.CacheSize),
		WithSpellCheck(cfg.SpellCheck),
		WithMaxEditDistance(cfg.MaxEditDistance),
		WithFuzzyMaxWords(cfg.FuzzyMaxWords),
		WithDefaultLimit(cfg.DefaultLimit),
	}
}
