// Executes external tools with explicit working directories.
//
// Every invocation carries its own argument vector, environment, and working
// directory; nothing is resolved through process-wide state and no shell is
// involved. The Runner interface is the seam between the pipeline and the
// host: production code uses the os/exec implementation, tests substitute a
// recording fake.
//
// A command that starts but exits non-zero is reported as an *ExitError so
// callers can distinguish tool failures from invocation failures. ExitError
// messages carry the binary name only, never the full argument vector.
package runner
