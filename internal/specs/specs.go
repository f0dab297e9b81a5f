package specs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ilastik/publish-conda-stack/internal/conda"
	"github.com/ilastik/publish-conda-stack/internal/paths"
)

// Operating systems a recipe may restrict itself to via build-on.
var knownPlatforms = []string{"win", "osx", "linux"}

// One entry in the ordered recipe list.
type Recipe struct {
	Name            string         `yaml:"name"`
	RecipeRepo      string         `yaml:"recipe-repo"`
	Tag             string         `yaml:"tag"`
	RecipeSubdir    string         `yaml:"recipe-subdir"`
	BuildOn         []string       `yaml:"build-on,omitempty"`
	Environment     map[string]any `yaml:"environment,omitempty"`
	CondaBuildFlags string         `yaml:"conda-build-flags,omitempty"`
}

// Returns the recipe's extra build flags as an argument list.
//
// Flags are whitespace-separated in the specs file; no quoting.
func (r Recipe) BuildFlags() []string {
	return strings.Fields(r.CondaBuildFlags)
}

// Returns the recipe's environment overrides as "key=value" strings.
//
// Values are stringified, so numeric YAML values are allowed.
func (r Recipe) Environ() []string {
	if len(r.Environment) == 0 {
		return nil
	}
	env := make([]string, 0, len(r.Environment))
	for k, v := range r.Environment {
		env = append(env, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(env)
	return env
}

// Returns true if the recipe should be built on the given OS ("win", "osx",
// or "linux"). An empty build-on list means build everywhere.
func (r Recipe) BuildsOn(osName string) bool {
	return len(r.BuildOn) == 0 || slices.Contains(r.BuildOn, osName)
}

// The "shared-config" section of the specs file.
type SharedConfig struct {
	SourceChannels         []string `yaml:"source-channels"`
	DestinationChannel     string   `yaml:"destination-channel"`
	RepoCacheDir           string   `yaml:"repo-cache-dir,omitempty"`
	MasterCondaBuildConfig string   `yaml:"master-conda-build-config,omitempty"`
	Backend                string   `yaml:"backend,omitempty"`
}

// A parsed specs file.
type File struct {
	Shared  SharedConfig `yaml:"shared-config"`
	Recipes []Recipe     `yaml:"recipe-specs"`

	dir string // Directory containing the specs file, for resolving relative paths.
}

// Reads and validates a specs file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpecs, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpecs, err)
	}

	return Parse(raw, dir)
}

// Parses specs file contents. Relative paths are resolved against dir.
func Parse(raw []byte, dir string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidSpecs, err)
	}
	f.dir = dir

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpecs, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	if len(f.Shared.SourceChannels) == 0 {
		return fmt.Errorf("shared-config.source-channels must be non-empty")
	}
	if strings.TrimSpace(f.Shared.DestinationChannel) == "" {
		return fmt.Errorf("shared-config.destination-channel is required")
	}
	if _, err := conda.ParseBackend(f.Shared.Backend); err != nil {
		return err
	}
	if len(f.Recipes) == 0 {
		return fmt.Errorf("recipe-specs must be non-empty")
	}

	for i, r := range f.Recipes {
		switch {
		case strings.TrimSpace(r.Name) == "":
			return fmt.Errorf("recipe-specs[%d]: name is required", i)
		case strings.TrimSpace(r.RecipeRepo) == "":
			return fmt.Errorf("recipe %q: recipe-repo is required", r.Name)
		case strings.TrimSpace(r.Tag) == "":
			return fmt.Errorf("recipe %q: tag is required", r.Name)
		case strings.TrimSpace(r.RecipeSubdir) == "":
			return fmt.Errorf("recipe %q: recipe-subdir is required", r.Name)
		}

		for _, p := range r.BuildOn {
			if !slices.Contains(knownPlatforms, p) {
				return fmt.Errorf("recipe %q: build-on entry %q not one of %v", r.Name, p, knownPlatforms)
			}
		}
	}
	return nil
}

// Returns the absolute repo cache directory.
//
// A relative path is resolved against the specs file directory. When the
// specs file does not configure one, the XDG cache location is used.
func (f *File) RepoCacheDir() string {
	d := f.Shared.RepoCacheDir
	if d == "" {
		return paths.RepoCache()
	}
	if !filepath.IsAbs(d) {
		d = filepath.Join(f.dir, d)
	}
	return filepath.Clean(d)
}

// Builds the conda configuration shared by every recipe of the run.
//
// The destination channel is stripped of any embedded label; the label joins
// the active label set once. CLI labels come first, in the order given,
// deduplicated.
func (f *File) CondaConfig(cliLabels []string, token string) (conda.Config, error) {
	backend, err := conda.ParseBackend(f.Shared.Backend)
	if err != nil {
		return conda.Config{}, fmt.Errorf("%w: %w", ErrInvalidSpecs, err)
	}

	channelArgs := make([]string, 0, 2*len(f.Shared.SourceChannels))
	for _, ch := range f.Shared.SourceChannels {
		channelArgs = append(channelArgs, "-c", ch)
	}

	channel, embedded := StripLabel(f.Shared.DestinationChannel)

	labels := dedupe(cliLabels)
	if embedded != "" && !slices.Contains(labels, embedded) {
		labels = append(labels, embedded)
	}

	variant := f.Shared.MasterCondaBuildConfig
	if variant != "" && !filepath.IsAbs(variant) {
		variant = filepath.Join(f.dir, variant)
	}

	return conda.Config{
		Backend:       backend,
		ChannelArgs:   channelArgs,
		Channel:       channel,
		Labels:        labels,
		VariantConfig: variant,
		Token:         token,
	}, nil
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
