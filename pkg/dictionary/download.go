package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// DefaultSources are newline separated English word lists, most common words first.
var DefaultSources = []string{
	"https://raw.githubusercontent.com/first20hours/google-10000-english/master/google-10000-english-usa.txt",
	"https://www.mit.edu/~ecprice/wordlist.10000",
	"https://raw.githubusercontent.com/dwyl/english-words/master/words_alpha.txt",
}

// techTerms get a frequency boost when a downloaded word contains one of them.
var techTerms = []string{
	"data", "code", "algorithm", "program", "computer",
	"software", "python", "java", "web", "api",
}

// ErrNoWords is returned when a source yields no usable words.
var ErrNoWords = errors.New("word list is empty")

// Download fetches a word list from url and assigns frequencies with
// AssignFrequencies. At most limit words are kept (all when limit <= 0).
func Download(ctx context.Context, client *http.Client, url string, limit int) ([]Entry, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	var words []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if limit > 0 && len(words) >= limit {
			break
		}
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", url, ErrNoWords)
	}

	return AssignFrequencies(words), nil
}

// DownloadAny tries each source in order and returns the first successful list along
// with the source it came from. An empty sources slice means DefaultSources.
func DownloadAny(ctx context.Context, client *http.Client, sources []string, limit int) ([]Entry, string, error) {
	if len(sources) == 0 {
		sources = DefaultSources
	}

	var errs []error
	for _, src := range sources {
		entries, err := Download(ctx, client, src, limit)
		if err == nil {
			log.Debugf("Downloaded %d words from %s", len(entries), src)
			return entries, src, nil
		}
		log.Warnf("Could not load word list from %s: %v", src, err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, "", fmt.Errorf("no word list source succeeded: %w", errors.Join(errs...))
}

// AssignFrequencies ranks words by list position: the first word gets 1000 and the
// scale falls linearly towards 300. Words containing a tech term get +200 and other
// words shorter than five letters get +100, both capped at 1000.
func AssignFrequencies(words []string) []Entry {
	entries := make([]Entry, 0, len(words))
	n := float64(len(words))
	for i, word := range words {
		base := 1000 - int(float64(i)/n*700)

		frequency := base
		switch {
		case containsTechTerm(word):
			frequency = min(1000, base+200)
		case utf8.RuneCountInString(word) < 5:
			frequency = min(1000, base+100)
		}
		entries = append(entries, Entry{Word: word, Frequency: frequency})
	}
	return entries
}

func containsTechTerm(word string) bool {
	for _, term := range techTerms {
		if strings.Contains(word, term) {
			return true
		}
	}
	return false
}
