package specs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilastik/publish-conda-stack/internal/conda"
)

const validSpecs = `
shared-config:
  source-channels:
    - conda-forge
    - ilastik-forge
  destination-channel: ilastik-forge/label/staging
  repo-cache-dir: ./repo-cache
  master-conda-build-config: variants.yaml
recipe-specs:
  - name: abc
    recipe-repo: https://github.com/ilastik/abc-recipe.git
    tag: v1.0
    recipe-subdir: recipe
  - name: d-e-f
    recipe-repo: https://github.com/ilastik/def-recipe.git
    tag: v2.1
    recipe-subdir: conda-recipe
    build-on: [linux, osx]
    environment:
      JOBS: 4
    conda-build-flags: --no-test
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(validSpecs), "/specs")
	require.NoError(t, err)

	require.Len(t, f.Recipes, 2)
	assert.Equal(t, "abc", f.Recipes[0].Name)
	assert.Equal(t, []string{"--no-test"}, f.Recipes[1].BuildFlags())
	assert.Equal(t, []string{"JOBS=4"}, f.Recipes[1].Environ())
	assert.Equal(t, filepath.Join("/specs", "repo-cache"), f.RepoCacheDir())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing destination channel",
			raw: `
shared-config:
  source-channels: [conda-forge]
recipe-specs:
  - {name: a, recipe-repo: r, tag: t, recipe-subdir: s}
`,
		},
		{
			name: "missing source channels",
			raw: `
shared-config:
  destination-channel: dest
recipe-specs:
  - {name: a, recipe-repo: r, tag: t, recipe-subdir: s}
`,
		},
		{
			name: "no recipes",
			raw: `
shared-config:
  source-channels: [conda-forge]
  destination-channel: dest
recipe-specs: []
`,
		},
		{
			name: "recipe missing tag",
			raw: `
shared-config:
  source-channels: [conda-forge]
  destination-channel: dest
recipe-specs:
  - {name: a, recipe-repo: r, recipe-subdir: s}
`,
		},
		{
			name: "bad build-on entry",
			raw: `
shared-config:
  source-channels: [conda-forge]
  destination-channel: dest
recipe-specs:
  - {name: a, recipe-repo: r, tag: t, recipe-subdir: s, build-on: [freebsd]}
`,
		},
		{
			name: "unknown backend",
			raw: `
shared-config:
  source-channels: [conda-forge]
  destination-channel: dest
  backend: micromamba
recipe-specs:
  - {name: a, recipe-repo: r, tag: t, recipe-subdir: s}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw), "/specs")
			assert.ErrorIs(t, err, ErrInvalidSpecs)
		})
	}
}

func TestCondaConfig(t *testing.T) {
	f, err := Parse([]byte(validSpecs), "/specs")
	require.NoError(t, err)

	cfg, err := f.CondaConfig([]string{"beta", "beta", "staging"}, "tok")
	require.NoError(t, err)

	assert.Equal(t, conda.Conda, cfg.Backend)
	assert.Equal(t, []string{"-c", "conda-forge", "-c", "ilastik-forge"}, cfg.ChannelArgs)

	// The embedded label is stripped from the channel and joins the label
	// set exactly once.
	assert.Equal(t, "ilastik-forge", cfg.Channel)
	assert.Equal(t, []string{"beta", "staging"}, cfg.Labels)

	assert.Equal(t, filepath.Join("/specs", "variants.yaml"), cfg.VariantConfig)
	assert.Equal(t, "tok", cfg.Token)
}

func TestCondaConfigEmbeddedLabelAppended(t *testing.T) {
	f, err := Parse([]byte(validSpecs), "/specs")
	require.NoError(t, err)

	cfg, err := f.CondaConfig([]string{"beta"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "staging"}, cfg.Labels)
}

func TestRecipeBuildsOn(t *testing.T) {
	r := Recipe{}
	assert.True(t, r.BuildsOn("linux"))

	r.BuildOn = []string{"win", "osx"}
	assert.True(t, r.BuildsOn("osx"))
	assert.False(t, r.BuildsOn("linux"))
}
