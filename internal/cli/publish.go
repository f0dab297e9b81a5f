package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/ilastik/publish-conda-stack/internal"
	"github.com/ilastik/publish-conda-stack/internal/conda"
	"github.com/ilastik/publish-conda-stack/internal/gitcache"
	"github.com/ilastik/publish-conda-stack/internal/publish"
	"github.com/ilastik/publish-conda-stack/internal/report"
	"github.com/ilastik/publish-conda-stack/internal/runner"
	"github.com/ilastik/publish-conda-stack/internal/specs"
)

// Represents the 'publish' command.
type PublishCmd struct {
	Specs   string   `arg:"" help:"Path to a recipe specs YAML file." type:"existingfile"`
	Recipes []string `arg:"" optional:"" help:"Recipes to process (default: all)."`

	StartFrom string   `help:"Recipe name to start from." env:"PUBLISH_START_FROM" placeholder:"NAME"`
	Label     []string `help:"Label(s) to use when uploading packages. Repeatable."`
	Token     string   `help:"Token used for anaconda upload."`
	Logfile   string   `short:"o" help:"Path of the run report, or a directory for an auto-named one." placeholder:"PATH"`
	EnvFile   string   `help:"Dotenv file with extra build environment variables." type:"existingfile" placeholder:"PATH"`
	KeepGoing bool     `help:"Continue with the remaining recipes after a recipe fails."`
}

// Executes the publish command: processes the selected recipes in specs-file
// order, one at a time, recording every outcome in the run report.
func (c *PublishCmd) Run(ctx context.Context) error {
	start := time.Now()

	file, err := specs.Load(c.Specs)
	if err != nil {
		return err
	}

	selected, err := specs.Select(file.Recipes, c.StartFrom, c.Recipes)
	if err != nil {
		return err
	}

	cfg, err := file.CondaConfig(c.Label, c.Token)
	if err != nil {
		return err
	}

	run := runner.New()

	buildCfg, err := conda.LoadBuildConfig(ctx, run)
	if err != nil {
		return err
	}

	baseEnv, err := c.baseEnvironment()
	if err != nil {
		return err
	}

	reportPath, err := report.ResolvePath(c.Logfile, start)
	if err != nil {
		return err
	}
	writer := report.NewWriter(reportPath, internal.Version(), c.reportArgs(cfg))

	pipeline := publish.New(publish.Options{
		Runner:  run,
		Cache:   gitcache.New(file.RepoCacheDir(), run),
		Conda:   cfg,
		Build:   buildCfg,
		BaseEnv: baseEnv,
	})

	runErr := c.processAll(ctx, pipeline, writer, selected)

	if err := writer.Finish(); err != nil {
		slog.Warn("could not write run report", "error", err)
	}
	printSummary(writer)

	return runErr
}

// Runs every selected recipe, recording outcomes as they arrive. The first
// error halts the loop unless --keep-going is set; either way it is
// returned after the report is complete.
func (c *PublishCmd) processAll(ctx context.Context, pipeline *publish.Pipeline, writer *report.Writer, selected []specs.Recipe) error {
	var firstErr error

	for _, recipe := range selected {
		outcome, err := pipeline.Run(ctx, recipe)
		if err != nil {
			slog.Error("recipe failed", "recipe", recipe.Name, "error", err)
			record(writer.AddError(recipe.Name, err))

			if firstErr == nil {
				firstErr = err
			}
			if !c.KeepGoing {
				break
			}
			continue
		}

		switch outcome.Status {
		case publish.StatusFound:
			record(writer.AddFound(outcome.Recipe, outcome.Packages))
		case publish.StatusBuilt:
			record(writer.AddBuilt(outcome.Recipe, outcome.Packages, outcome.BuildDuration))
		case publish.StatusSkipped:
			record(writer.AddSkipped(outcome.Recipe))
		}
	}

	return firstErr
}

// Builds the base environment for tool invocations: the process environment,
// optionally overlaid with a dotenv file. Per-recipe overrides are merged on
// top of this later, so the precedence is recipe > dotenv > ambient.
func (c *PublishCmd) baseEnvironment() ([]string, error) {
	env := os.Environ()
	if c.EnvFile == "" {
		return env, nil
	}

	extra, err := godotenv.Read(c.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", c.EnvFile, err)
	}

	pairs := make([]string, 0, len(extra))
	for k, v := range extra {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	return runner.MergeEnv(env, pairs), nil
}

func (c *PublishCmd) reportArgs(cfg conda.Config) report.Args {
	token := ""
	if c.Token != "" {
		token = "<redacted>"
	}
	return report.Args{
		SpecsPath: c.Specs,
		Recipes:   c.Recipes,
		StartFrom: c.StartFrom,
		Labels:    cfg.Labels,
		Token:     token,
	}
}

// Logs report-write failures without masking the run's own result.
func record(err error) {
	if err != nil {
		slog.Warn("could not write run report", "error", err)
	}
}

func printSummary(writer *report.Writer) {
	text, err := writer.Render()
	if err != nil {
		slog.Warn("could not render summary", "error", err)
		return
	}

	fmt.Println("--------")
	fmt.Printf("DONE, result written to %s\n", writer.Path())
	fmt.Println("--------")
	fmt.Println("Summary:")
	fmt.Print(text)
}
