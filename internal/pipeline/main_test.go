package pipeline

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures a Run call's errgroup worker pool and parser set never
// leave goroutines behind once Run returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("sync.runtime_Semacquire"),
	)
}
