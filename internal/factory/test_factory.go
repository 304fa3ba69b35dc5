package factory

import (
	"time"

	memoryarchive "github.com/mcoot/findingfriends/internal/archive/memory"
	"github.com/mcoot/findingfriends/internal/dependencies/mocks"
	"github.com/mcoot/findingfriends/internal/storage/memory"
	"github.com/mcoot/findingfriends/internal/testutil"
)

// TestStartTime is the mock clock's initial time: Saturday evening, UTC
var TestStartTime = time.Date(2024, 3, 9, 19, 30, 0, 0, time.UTC)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Sessions are keyed by UTC dates.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(TestStartTime)
	app := newWithDependencies(memory.New(), memoryarchive.New(mockClock), mockClock, time.UTC, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
