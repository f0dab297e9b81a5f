package publish

import (
	"time"

	"github.com/ilastik/publish-conda-stack/internal/conda"
)

// Terminal status of one recipe's pipeline run.
type Status string

const (
	StatusFound   Status = "found"   // Every rendered package was already published.
	StatusBuilt   Status = "built"   // Built and uploaded.
	StatusSkipped Status = "skipped" // Not built on this platform.
)

// Result of processing one recipe.
type Outcome struct {
	Recipe        string                  // Recipe name.
	Status        Status                  //
	Packages      []conda.PackageIdentity // Rendered identity tuple (empty for skipped).
	BuildDuration time.Duration           // Wall-clock build time, set for built.
}
