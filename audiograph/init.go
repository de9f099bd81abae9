package audiograph

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/shaban/audiograph/internal/alog"
)

// initOnce mirrors spec.md §9's one-shot process-wide initialization (the
// audio-file-subsystem bring-up in the C source, never torn down for the
// life of the process). Here it fixes the default log level once; New can
// be called many times per process without re-running it.
var initOnce sync.Once

func ensureInitialized() {
	initOnce.Do(func() {
		alog.SetLevel(log.InfoLevel)
	})
}
