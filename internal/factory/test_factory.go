package factory

import (
	"context"
	"log/slog"

	"github.com/mcoot/singhit/internal/dependencies/mocks"
	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/services/wordpool"
	"github.com/mcoot/singhit/internal/storage"
	"github.com/mcoot/singhit/internal/storage/memory"
	"github.com/mcoot/singhit/internal/testutil"
)

// Small pools keep queue exhaustion reachable in tests
var (
	TestWordsIT = []string{"amore", "cuore", "sole", "mare"}
	TestWordsEN = []string{"love", "heart", "night"}
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a test App that restores from and saves to store
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	return newTestApp(store, testutil.NopLogger())
}

func newTestApp(store storage.Storage, logger *slog.Logger) *TestApp {
	mockClock := mocks.NewMockClock(testutil.Epoch)
	mockRandom := mocks.NewMockRandom()

	words := wordpool.New(mockRandom, logger)
	_ = words.LoadWords(model.LanguageItalian, TestWordsIT)
	_ = words.LoadWords(model.LanguageEnglish, TestWordsEN)

	app := newWithDependencies(context.Background(), store, mockClock, mockRandom, words, 0, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
