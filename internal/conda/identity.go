package conda

import (
	"fmt"
	"path"
	"strings"
)

// Archive suffix that marks a built-artifact path in render output.
const ArchiveSuffix = ".tar.bz2"

// The canonical (name, version, build-string) triple addressing one built
// artifact. Comparable; identical triples are one package.
type PackageIdentity struct {
	Name        string
	Version     string
	BuildString string
}

func (p PackageIdentity) String() string {
	return p.Name + "-" + p.Version + "-" + p.BuildString
}

// Archive filename of the artifact.
func (p PackageIdentity) Filename() string {
	return p.String() + ArchiveSuffix
}

// Extracts the package identities from raw render output.
//
// Render output mixes artifact paths with diagnostic noise (patch-analysis
// tables and the like); only tokens ending in the archive suffix count.
// Filenames split right-to-left on "-", peeling off exactly the build string
// and version, so package names containing "-" survive intact. Both Unix and
// Windows line endings are accepted.
//
// Every parsed identity must carry the expected package name; a mismatch
// means the recipe rendered something unexpected and is a hard error. The
// result preserves first-appearance order and contains no duplicates.
func ParseRenderOutput(expectedName string, raw []byte) ([]PackageIdentity, error) {
	var identities []PackageIdentity
	seen := make(map[PackageIdentity]struct{})

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		for _, token := range strings.Fields(line) {
			if !strings.HasSuffix(token, ArchiveSuffix) {
				continue
			}

			id, err := parseArtifactName(token)
			if err != nil {
				return nil, err
			}
			if id.Name != expectedName {
				return nil, fmt.Errorf("%w: recipe for %q rendered %q", ErrNameMismatch, expectedName, id.Name)
			}

			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			identities = append(identities, id)
		}
	}

	return identities, nil
}

// Splits an artifact path's filename into its identity triple.
//
// The rightmost two "-"-separated segments are the build string and version;
// everything before them is the name.
func parseArtifactName(artifactPath string) (PackageIdentity, error) {
	filename := path.Base(artifactPath)
	stem := strings.TrimSuffix(filename, ArchiveSuffix)

	rest, buildString, ok := cutLast(stem)
	if !ok {
		return PackageIdentity{}, fmt.Errorf("unexpected artifact filename: %q", filename)
	}
	name, version, ok := cutLast(rest)
	if !ok {
		return PackageIdentity{}, fmt.Errorf("unexpected artifact filename: %q", filename)
	}

	return PackageIdentity{Name: name, Version: version, BuildString: buildString}, nil
}

// Splits s at its last "-".
func cutLast(s string) (before, after string, ok bool) {
	i := strings.LastIndex(s, "-")
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}
