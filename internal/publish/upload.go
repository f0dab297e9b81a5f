package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilastik/publish-conda-stack/internal/conda"
	"github.com/ilastik/publish-conda-stack/internal/runner"
)

// Upload tool binary.
const uploadTool = "anaconda"

// Subdirectory holding architecture-independent packages.
const noarchDir = "noarch"

// Uploads every package of the identity tuple in one invocation.
//
// Artifacts are located under the build tree's platform subdirectory, with a
// fallback to noarch. The upload passes --skip-existing so packages that are
// already published (a partially-present multi-output recipe, or a retry) do
// not fail the invocation. The configured token is redacted from any error
// before it propagates.
func (p *Pipeline) upload(ctx context.Context, identities []conda.PackageIdentity) error {
	files := make([]string, len(identities))
	for i, id := range identities {
		path, err := p.locateArtifact(id)
		if err != nil {
			return err
		}
		files[i] = path
	}

	args := []string{uploadTool}
	if p.conda.Token != "" {
		args = append(args, "-t", p.conda.Token)
	}
	args = append(args, "upload", "-u", p.conda.Channel)
	for _, label := range p.conda.Labels {
		args = append(args, "--label", label)
	}
	args = append(args, "--skip-existing")
	args = append(args, files...)

	slog.Info("uploading packages", "count", len(files), "channel", p.conda.Channel)

	if err := p.runner.Run(ctx, runner.Invocation{Args: args}); err != nil {
		// Flatten the cause to a redacted string: the token must not
		// survive anywhere in the propagated error, including wrapped
		// stderr text.
		return fmt.Errorf("%w: %s", ErrUpload, redactToken(err.Error(), p.conda.Token))
	}
	return nil
}

// Finds a built artifact on disk, preferring the platform subdirectory and
// falling back to noarch.
func (p *Pipeline) locateArtifact(id conda.PackageIdentity) (string, error) {
	platformPath := filepath.Join(p.build.BuildFolder, p.build.Platform, id.Filename())
	if _, err := os.Stat(platformPath); err == nil {
		return platformPath, nil
	}

	noarchPath := filepath.Join(p.build.BuildFolder, noarchDir, id.Filename())
	if _, err := os.Stat(noarchPath); err == nil {
		return noarchPath, nil
	}

	return "", fmt.Errorf("%w: %s (looked in %s and %s)",
		ErrArtifactMissing, id.Filename(),
		filepath.Dir(platformPath), filepath.Dir(noarchPath))
}

// Strips the upload token from an error message.
func redactToken(msg, token string) string {
	if token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, token, "<token removed>")
}
