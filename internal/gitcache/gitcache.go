package gitcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ilastik/publish-conda-stack/internal/paths"
	"github.com/ilastik/publish-conda-stack/internal/runner"
)

var ErrSourceAcquisition = errors.New("failed to clone or update repository")

// Cache of recipe repository clones under a shared root directory.
type Cache struct {
	root   string
	runner runner.Runner
	env    []string
}

// Creates a cache rooted at the given directory.
func New(root string, r runner.Runner) *Cache {
	return &Cache{
		root:   root,
		runner: r,

		// Disable the git pager for log output.
		env: runner.MergeEnv(os.Environ(), []string{"GIT_PAGER="}),
	}
}

// Checks out the given repository and tag, cloning or fetching first as
// needed, and updates any submodules. Returns the working directory holding
// the checked-out ref.
func (c *Cache) Checkout(ctx context.Context, repoURL, tag string) (string, error) {
	dir, err := c.sync(ctx, repoURL, tag)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w (double-check the repo url, or delete the repo cache and try again)",
			ErrSourceAcquisition, repoURL, err)
	}

	slog.Info("recipe checked out", "repo", repoURL, "tag", tag, "dir", dir)

	// Show the commit we landed on. Best effort.
	_ = c.git(ctx, dir, "log", "-n1")

	return dir, nil
}

func (c *Cache) sync(ctx context.Context, repoURL, tag string) (string, error) {
	if err := os.MkdirAll(c.root, paths.DefaultDirMode); err != nil {
		return "", err
	}

	name := repoName(repoURL)
	remote := remoteName(repoURL)
	dir := filepath.Join(c.root, name)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Info("cloning recipe repo", "repo", repoURL, "dir", dir)
		if err := c.git(ctx, c.root, "clone", "-o", remote, repoURL); err != nil {
			return "", err
		}
	} else {
		// The repo is already cloned, but which remote do we fetch from?
		out, err := c.runner.Output(ctx, runner.Invocation{
			Args: []string{"git", "remote", "-v"},
			Dir:  dir,
			Env:  c.env,
		})
		if err != nil {
			return "", err
		}

		existing, ok := Remotes(string(out))[repoURL]
		if ok {
			remote = existing
		} else {
			// Cached clone is missing the desired remote. Add it.
			if err := c.git(ctx, dir, "remote", "add", remote, repoURL); err != nil {
				return "", err
			}
		}

		if err := c.git(ctx, dir, "fetch", remote); err != nil {
			return "", err
		}
	}

	if err := c.git(ctx, dir, "checkout", tag); err != nil {
		return "", err
	}
	if err := c.git(ctx, dir, "pull", "--ff-only", remote, tag); err != nil {
		return "", err
	}
	if err := c.git(ctx, dir, "submodule", "update", "--init", "--recursive"); err != nil {
		return "", err
	}

	return dir, nil
}

func (c *Cache) git(ctx context.Context, dir string, args ...string) error {
	return c.runner.Run(ctx, runner.Invocation{
		Args: append([]string{"git"}, args...),
		Dir:  dir,
		Env:  c.env,
	})
}

// Parses "git remote -v" output into a URL-to-remote-name map.
func Remotes(out string) map[string]string {
	remotes := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		remotes[fields[1]] = fields[0]
	}
	return remotes
}

// Directory name for a repository URL: the basename with any ".git" suffix
// stripped.
func repoName(repoURL string) string {
	return strings.TrimSuffix(path.Base(repoURL), ".git")
}

// Remote name for a repository URL: the owner segment, assuming a URL of the
// form host/owner/repo[.git].
func remoteName(repoURL string) string {
	segments := strings.Split(strings.TrimSuffix(repoURL, "/"), "/")
	if len(segments) < 2 {
		return "origin"
	}
	return segments[len(segments)-2]
}
