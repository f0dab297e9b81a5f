package conda

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilastik/publish-conda-stack/internal/runner"
)

// Environment variable conda honors to relocate its build tree.
const bldPathEnv = "CONDA_BLD_PATH"

// Host-side build-tool configuration, probed once per run.
type BuildConfig struct {
	Platform    string // Platform subdirectory, e.g. "linux-64" or "osx-arm64".
	BuildFolder string // Root of the build output tree (conda-bld).
}

// Operating system half of the platform string ("linux", "osx", or "win"),
// as used by recipe build-on lists.
func (b BuildConfig) OS() string {
	osName, _, _ := strings.Cut(b.Platform, "-")
	return osName
}

// Queries the build tool for its platform and build tree location.
//
// CONDA_BLD_PATH overrides the build tree, matching conda-build's own
// behavior.
func LoadBuildConfig(ctx context.Context, r runner.Runner) (BuildConfig, error) {
	out, err := r.Output(ctx, runner.Invocation{
		Args: []string{primaryTool, "info", "--json"},
	})
	if err != nil {
		return BuildConfig{}, fmt.Errorf("conda info: %w", err)
	}

	var info struct {
		Platform   string `json:"platform"`
		RootPrefix string `json:"root_prefix"`
	}
	if err := json.Unmarshal(out, &info); err != nil {
		return BuildConfig{}, fmt.Errorf("conda info: decode: %w", err)
	}
	if info.Platform == "" || info.RootPrefix == "" {
		return BuildConfig{}, fmt.Errorf("conda info: missing platform or root_prefix")
	}

	folder := os.Getenv(bldPathEnv)
	if folder == "" {
		folder = filepath.Join(info.RootPrefix, "conda-bld")
	}

	return BuildConfig{
		Platform:    info.Platform,
		BuildFolder: folder,
	}, nil
}
