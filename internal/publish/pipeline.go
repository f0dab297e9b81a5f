package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilastik/publish-conda-stack/internal/conda"
	"github.com/ilastik/publish-conda-stack/internal/gitcache"
	"github.com/ilastik/publish-conda-stack/internal/runner"
	"github.com/ilastik/publish-conda-stack/internal/specs"
)

// Controls pipeline construction.
type Options struct {
	Runner  runner.Runner     // Executes external tools.
	Cache   *gitcache.Cache   // Provides checked-out recipe repositories.
	Conda   conda.Config      // Run-wide conda configuration.
	Build   conda.BuildConfig // Probed platform and build tree.
	BaseEnv []string          // Base environment for tool invocations. Nil means the process environment.
}

// Runs recipes through the build-and-publish pipeline.
type Pipeline struct {
	runner  runner.Runner
	cache   *gitcache.Cache
	conda   conda.Config
	build   conda.BuildConfig
	baseEnv []string
}

// Creates a [Pipeline] from the given options.
func New(opts Options) *Pipeline {
	baseEnv := opts.BaseEnv
	if baseEnv == nil {
		baseEnv = os.Environ()
	}
	return &Pipeline{
		runner:  opts.Runner,
		cache:   opts.Cache,
		conda:   opts.Conda,
		build:   opts.Build,
		baseEnv: baseEnv,
	}
}

// Processes a single recipe end-to-end.
//
// The recipe is skipped outright if this platform is not in its build-on
// list. Otherwise its repository is checked out, the recipe is rendered, and
// the destination channel is consulted: when every rendered package is
// already published the recipe is recorded as found, otherwise it is built
// and all of its packages are uploaded in one invocation.
func (p *Pipeline) Run(ctx context.Context, recipe specs.Recipe) (*Outcome, error) {
	slog.Info("processing recipe", "recipe", recipe.Name)

	if !recipe.BuildsOn(p.build.OS()) {
		slog.Info("not building on this platform",
			"recipe", recipe.Name,
			"platform", p.build.OS(),
			"build-on", recipe.BuildOn,
		)
		return &Outcome{Recipe: recipe.Name, Status: StatusSkipped}, nil
	}

	env := runner.MergeEnv(p.baseEnv, recipe.Environ())

	repoDir, err := p.cache.Checkout(ctx, recipe.RecipeRepo, recipe.Tag)
	if err != nil {
		return nil, err
	}

	identities, err := p.render(ctx, recipe, repoDir, env)
	if err != nil {
		return nil, err
	}

	records, err := conda.CheckExists(ctx, p.runner, p.conda, identities)
	if err != nil {
		return nil, err
	}

	if allFound(records) {
		slog.Info("all packages already published, skipping build",
			"recipe", recipe.Name,
			"channel", p.conda.Channel,
		)
		return &Outcome{Recipe: recipe.Name, Status: StatusFound, Packages: identities}, nil
	}

	start := time.Now()
	if err := p.buildRecipe(ctx, recipe, repoDir, env); err != nil {
		return nil, err
	}
	duration := time.Since(start)

	if err := p.upload(ctx, identities); err != nil {
		return nil, err
	}

	return &Outcome{
		Recipe:        recipe.Name,
		Status:        StatusBuilt,
		Packages:      identities,
		BuildDuration: duration,
	}, nil
}

// Renders the recipe and parses the resulting package identities.
func (p *Pipeline) render(ctx context.Context, recipe specs.Recipe, repoDir string, env []string) ([]conda.PackageIdentity, error) {
	slog.Info("rendering recipe", "recipe", recipe.Name, "subdir", recipe.RecipeSubdir)

	args := append(p.conda.RenderArgs(), recipe.RecipeSubdir)
	out, err := p.runner.Output(ctx, runner.Invocation{Args: args, Dir: repoDir, Env: env})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", recipe.Name, err)
	}

	identities, err := conda.ParseRenderOutput(recipe.Name, out)
	if err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoOutputs, recipe.Name)
	}

	for _, id := range identities {
		slog.Info("rendered package", "package", id.String())
	}
	return identities, nil
}

// Builds the recipe with its extra flags in the checked-out repository.
func (p *Pipeline) buildRecipe(ctx context.Context, recipe specs.Recipe, repoDir string, env []string) error {
	slog.Info("building recipe", "recipe", recipe.Name)

	args := append(p.conda.BuildArgs(), recipe.BuildFlags()...)
	args = append(args, recipe.RecipeSubdir)

	if err := p.runner.Run(ctx, runner.Invocation{Args: args, Dir: repoDir, Env: env}); err != nil {
		return fmt.Errorf("%w: package %s: %w", ErrBuild, recipe.Name, err)
	}
	return nil
}

func allFound(records []conda.ExistenceRecord) bool {
	for _, rec := range records {
		if !rec.Found {
			return false
		}
	}
	return true
}
