// Parses flags and drives the publish run.
//
// The tool exposes three commands:
//
//	publish   Build and upload the selected recipes (default).
//	list      List the recipe names in the specs file.
//	version   Show version information.
//
// Global -q and -d flags override build-time logging defaults. After
// parsing, the global logger is reconfigured to reflect the final level
// before any work starts.
package cli
