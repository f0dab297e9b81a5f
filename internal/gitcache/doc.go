// Maintains the persistent cache of recipe repositories.
//
// The cache directory holds one clone per repository, keyed by the
// repository's basename. Checking out a ref clones on first use, otherwise
// fetches from the matching remote, then checks out the requested tag with
// submodules resolved. Remotes are named after the owner segment of the
// repository URL, so one clone can track the same recipe repo across forks.
//
// The cache is shared mutable state across runs; single-writer access is
// assumed.
package gitcache
