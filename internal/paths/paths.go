package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilastik/publish-conda-stack/internal"
)

const (

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the base cache directory.
//
//	Linux:   $XDG_CACHE_HOME/publish-conda-stack or ~/.cache/publish-conda-stack
//	macOS:   ~/Library/Caches/publish-conda-stack
func Cache() string {
	return filepath.Join(xdg.CacheHome, internal.Name)
}

// Default path to the recipe repository cache.
//
// Used when the specs file does not configure repo-cache-dir.
//
//	Linux:   $XDG_CACHE_HOME/publish-conda-stack/repos
//	macOS:   ~/Library/Caches/publish-conda-stack/repos
func RepoCache() string {
	return filepath.Join(Cache(), "repos")
}
