package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/dependencies/mocks"
	"github.com/borga-dev/borga/internal/gate"
	"github.com/borga-dev/borga/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The admission gate runs with a millisecond base delay so tests that pass
// through it stay fast.
func NewTestApp() *TestApp {
	return NewTestAppWithCatalog("")
}

// NewTestAppWithCatalog creates a test App whose catalog client points at
// the given base URL, typically an httptest server standing in for the
// external catalog.
func NewTestAppWithCatalog(catalogURL string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	gateCfg := gate.Config{BaseDelay: time.Millisecond}
	catalogCfg := catalog.DefaultConfig()
	if catalogURL != "" {
		catalogCfg.BaseURL = catalogURL
	}

	app := newWithDependencies(store, mockClock, gateCfg, catalogCfg, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
