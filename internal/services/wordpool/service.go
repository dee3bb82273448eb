package wordpool

import (
	"bufio"
	"bytes"
	"embed"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/singhit/internal/dependencies/random"
	"github.com/mcoot/singhit/internal/model"
)

//go:embed data/*.txt
var embedded embed.FS

var embeddedFiles = map[model.Language]string{
	model.LanguageItalian: "data/it.txt",
	model.LanguageEnglish: "data/en.txt",
}

// Service holds the read-only word pools and produces shuffled passes
type Service struct {
	random random.Random
	logger *slog.Logger

	mu    sync.RWMutex
	pools map[model.Language][]string
}

// New creates a new word pool Service with no pools loaded
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger.With(slog.String("component", "wordpool")),
		pools:  make(map[model.Language][]string),
	}
}

// LoadDefaults loads the embedded Italian and English pools
func (s *Service) LoadDefaults() error {
	for lang, name := range embeddedFiles {
		data, err := embedded.ReadFile(name)
		if err != nil {
			return err
		}
		words, err := readWords(bytes.NewReader(data))
		if err != nil {
			return err
		}
		if err := s.LoadWords(lang, words); err != nil {
			return err
		}
	}
	return nil
}

// LoadFromFile replaces a pool with the words in a file (one word per line)
func (s *Service) LoadFromFile(lang model.Language, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	words, err := readWords(file)
	if err != nil {
		return err
	}
	return s.LoadWords(lang, words)
}

// LoadWords replaces the pool for a single language. Words are trimmed,
// blanks dropped and duplicates collapsed so every pass has distinct words.
func (s *Service) LoadWords(lang model.Language, words []string) error {
	if lang != model.LanguageItalian && lang != model.LanguageEnglish {
		return model.ErrUnknownLanguage
	}

	seen := make(map[string]struct{}, len(words))
	pool := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		pool = append(pool, w)
	}
	if len(pool) == 0 {
		return model.ErrEmptyPool
	}

	s.mu.Lock()
	s.pools[lang] = pool
	s.mu.Unlock()

	s.logger.Debug("word pool loaded",
		slog.String("language", string(lang)),
		slog.Int("words", len(pool)),
	)
	return nil
}

// Pool returns a copy of the pool for a language. MIX is Italian followed by
// English, keeping only the first occurrence of a word found in both.
func (s *Service) Pool(lang model.Language) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var parts []model.Language
	switch lang {
	case model.LanguageItalian, model.LanguageEnglish:
		parts = []model.Language{lang}
	case model.LanguageMixed:
		parts = []model.Language{model.LanguageItalian, model.LanguageEnglish}
	default:
		return nil
	}

	var pool []string
	seen := make(map[string]struct{})
	for _, p := range parts {
		for _, w := range s.pools[p] {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			pool = append(pool, w)
		}
	}
	return pool
}

// Size returns the number of words in the pool for a language
func (s *Service) Size(lang model.Language) int {
	return len(s.Pool(lang))
}

// Shuffled returns a fresh uniformly shuffled copy of the pool
func (s *Service) Shuffled(lang model.Language) []string {
	pool := s.Pool(lang)
	random.Shuffle(s.random, pool)
	return pool
}

// Contains reports whether word is part of the pool for a language
func (s *Service) Contains(lang model.Language, word string) bool {
	for _, w := range s.Pool(lang) {
		if w == word {
			return true
		}
	}
	return false
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadDefaults() error
	LoadFromFile(lang model.Language, path string) error
	LoadWords(lang model.Language, words []string) error
	Pool(lang model.Language) []string
	Size(lang model.Language) int
	Shuffled(lang model.Language) []string
	Contains(lang model.Language, word string) bool
}

var _ ServiceInterface = (*Service)(nil)
