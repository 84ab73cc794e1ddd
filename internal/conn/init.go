package conn

import (
	"fmt"
	"sync"
)

// Settings is the process-wide driver configuration that cannot change
// once the first connection has been opened.
type Settings struct {
	NativeLibDir string   // native client library directory, empty for pure-Go mode
	Security     Security // default security strategy for new handles
}

var (
	initMu       sync.Mutex
	initSettings *Settings
)

// Initialize records the process-wide driver settings. It must be called
// before any Handle is opened. Calling it again with identical settings is
// a no-op; calling it with different settings is an error because the
// underlying driver state cannot be reconfigured after first use.
func Initialize(s Settings) error {
	if err := s.Security.Validate(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	initMu.Lock()
	defer initMu.Unlock()

	if initSettings != nil {
		if *initSettings != s {
			return fmt.Errorf("initialize: driver already initialized with conflicting settings")
		}
		return nil
	}

	copied := s
	initSettings = &copied
	return nil
}

// ActiveSettings returns the settings recorded by Initialize, or an error
// if Initialize has not happened yet. Handle implementations call this
// from Open so that the ordering requirement is enforced, not assumed.
func ActiveSettings() (Settings, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if initSettings == nil {
		return Settings{}, fmt.Errorf("driver not initialized: call Initialize before Open")
	}
	return *initSettings, nil
}

// resetInitialization clears the one-shot state. Test hook only.
func resetInitialization() {
	initMu.Lock()
	defer initMu.Unlock()
	initSettings = nil
}
