// Builds and interprets invocations of the conda tool family.
//
// The package covers four concerns: the backend selection (conda or mamba,
// each with its own argument-building strategy), the render/search/build
// argument vectors, parsing rendered package identities out of render
// output, and checking whether identities are already published on the
// destination channel.
//
// All argument construction is pure: functions here produce vectors, the
// runner package executes them. The one exception is the existence check
// and the build-config probe, which run the search and info commands through
// an injected runner.
package conda
