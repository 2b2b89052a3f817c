package frontend

import (
	"fmt"
	"sync"
)

// processMu serializes every toolchain scope in the process.
var processMu sync.Mutex

// Acquire opens a process scope for tc. It blocks until no other scope is
// open, then initializes tc. The returned release finalizes tc and lets the
// next scope in; callers must invoke it exactly once, typically with defer.
func Acquire(tc Toolchain) (release func(), err error) {
	processMu.Lock()
	if err := tc.Initialize(); err != nil {
		processMu.Unlock()
		return nil, fmt.Errorf("frontend: initialize toolchain: %w", err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			tc.Finalize()
			processMu.Unlock()
		})
	}, nil
}
