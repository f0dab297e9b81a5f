// Package publish orchestrates the per-recipe build-and-publish pipeline.
//
// Each recipe moves through a fixed sequence: platform filter, source
// checkout, render, existence check, then either a skip (every rendered
// package is already on the destination channel) or a build followed by one
// upload covering every rendered package. A multi-output recipe is one
// atomic unit of work: partial presence on the channel still triggers a full
// rebuild, and the upload's skip-existing flag keeps re-uploads idempotent.
//
// External tools are invoked through the runner package with explicit
// working directories; the pipeline never changes the process's own
// directory. Recipes are processed one at a time, so one recipe's outcome
// never affects the next beyond the caller's stop-on-error policy.
//
// Example usage:
//
//	p := publish.New(publish.Options{
//	    Runner: runner.New(),
//	    Cache:  gitcache.New(cacheDir, runner.New()),
//	    Conda:  condaCfg,
//	    Build:  buildCfg,
//	})
//	outcome, err := p.Run(ctx, recipe)
package publish
