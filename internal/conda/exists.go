package conda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ilastik/publish-conda-stack/internal/runner"
)

// Exception name conda search reports when a channel/name combination
// yields zero results and the tool exits non-zero anyway.
const notFoundSignature = "PackagesNotFoundError"

// Pairs an identity with its presence on the destination channel.
type ExistenceRecord struct {
	Identity PackageIdentity
	Found    bool
}

// Reports, for each identity, whether an artifact with its exact (version,
// build-string) pair is visible in the destination channel's label scope.
//
// All identities must share one package name; the channel and every active
// label sub-channel are queried in a single search. A package published
// under any label is detected, since a second upload of the same identity
// under a different label would be rejected.
//
// Result order matches input order.
func CheckExists(ctx context.Context, r runner.Runner, cfg Config, identities []PackageIdentity) ([]ExistenceRecord, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("%w: no identities to check", ErrSearch)
	}
	name := identities[0].Name

	slog.Info("searching channel", "channel", cfg.Channel, "package", name, "labels", cfg.Labels)

	args := append(cfg.SearchArgs(), name)
	out, err := r.Output(ctx, runner.Invocation{Args: args})
	if err != nil {
		if !isZeroResultExit(err, out) {
			return nil, fmt.Errorf("%w: %w", ErrSearch, err)
		}
		// The search tool exits non-zero on zero results in some
		// configurations; that just means nothing is published yet.
		return notFound(identities), nil
	}

	var results map[string][]struct {
		Version string `json:"version"`
		Build   string `json:"build"`
	}
	if err := json.Unmarshal(out, &results); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrSearch, err)
	}

	published := make(map[PackageIdentity]struct{})
	for _, hit := range results[name] {
		published[PackageIdentity{Name: name, Version: hit.Version, BuildString: hit.Build}] = struct{}{}
	}

	records := make([]ExistenceRecord, len(identities))
	for i, id := range identities {
		_, found := published[id]
		records[i] = ExistenceRecord{Identity: id, Found: found}
	}
	return records, nil
}

// Recognizes the known zero-result failure mode of the search tool: a
// non-zero exit whose JSON error body names PackagesNotFoundError. Any other
// failure is a real error and must not be mistaken for "not found".
func isZeroResultExit(err error, out []byte) bool {
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}

	var body struct {
		ExceptionName string `json:"exception_name"`
	}
	if jsonErr := json.Unmarshal(out, &body); jsonErr != nil {
		return false
	}
	return body.ExceptionName == notFoundSignature
}

func notFound(identities []PackageIdentity) []ExistenceRecord {
	records := make([]ExistenceRecord, len(identities))
	for i, id := range identities {
		records[i] = ExistenceRecord{Identity: id}
	}
	return records
}
