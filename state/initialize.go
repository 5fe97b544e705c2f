package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values, tag
// registry is selected later from configuration
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}
