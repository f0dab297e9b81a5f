// Loads and validates the recipe specs file.
//
// A specs file has two sections: "shared-config", which applies to the whole
// run (channels, backend, repo cache, variant config), and "recipe-specs",
// an ordered list of recipes to process. The file is read once; everything
// derived from it is immutable for the rest of the run.
//
// Relative paths in the shared config (repo cache, variant config) are
// resolved against the directory containing the specs file.
package specs
