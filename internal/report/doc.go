// Persists the cumulative run report.
//
// Outcomes are appended in arrival order and the whole report is rewritten
// to disk after every recipe, so a killed run still leaves a partial report
// behind. The report is YAML, mirroring the specs file format, and carries
// run metadata: tool version, a unique run id, the (token-scrubbed)
// invocation arguments, and timestamps.
package report
