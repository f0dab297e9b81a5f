package conda

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patchNoise = `Patch level ambiguous, selecting least deep
Patch analysis gives:
[[ RA-MD1--VE ]] - [[                                       0001-fix-whatever.patch ]]

Key:

R :: Reversible                       A :: Applicable
Y :: Build-prefix patch in use        M :: Minimal, non-amalgamated
D :: Dry-runnable                     N :: Patch level (1 is preferred)
L :: Patch level not-ambiguous        O :: Patch applies without offsets
V :: Patch applies without fuzz       E :: Patch applies without emitting to stderr

/some/path/abc-1.0.0-0py0whatever.tar.bz2
`

func TestParseRenderOutput(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
		raw  string
		want []PackageIdentity
	}{
		{
			name: "single output",
			pkg:  "abc",
			raw:  "/some/path/abc-1.0.0-0py0.tar.bz2",
			want: []PackageIdentity{{"abc", "1.0.0", "0py0"}},
		},
		{
			name: "multi output",
			pkg:  "abc",
			raw:  "/some/path/abc-1.0.0-0py0.tar.bz2\n/some/path/abc-1.0.0-1py2.tar.bz2",
			want: []PackageIdentity{
				{"abc", "1.0.0", "0py0"},
				{"abc", "1.0.0", "1py2"},
			},
		},
		{
			name: "hyphenated package name",
			pkg:  "a-b-c",
			raw:  "/some/path/a-b-c-1.0.0-0py0.tar.bz2",
			want: []PackageIdentity{{"a-b-c", "1.0.0", "0py0"}},
		},
		{
			name: "patch diagnostics ignored",
			pkg:  "abc",
			raw:  patchNoise,
			want: []PackageIdentity{{"abc", "1.0.0", "0py0whatever"}},
		},
		{
			name: "windows line endings",
			pkg:  "abc",
			raw:  "/some/path/abc-1.0.0-0py0.tar.bz2\r\n/some/path/abc-1.0.0-1py2.tar.bz2\r\n",
			want: []PackageIdentity{
				{"abc", "1.0.0", "0py0"},
				{"abc", "1.0.0", "1py2"},
			},
		},
		{
			name: "duplicate artifact lines collapse",
			pkg:  "abc",
			raw:  "/p/abc-1.0.0-0py0.tar.bz2\n/p/abc-1.0.0-0py0.tar.bz2\n/p/abc-1.0.0-1py2.tar.bz2",
			want: []PackageIdentity{
				{"abc", "1.0.0", "0py0"},
				{"abc", "1.0.0", "1py2"},
			},
		},
		{
			name: "no artifact lines",
			pkg:  "abc",
			raw:  "nothing rendered here\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRenderOutput(tt.pkg, []byte(tt.raw))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("identities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRenderOutputNameMismatch(t *testing.T) {
	raw := "/some/path/abc-1.0.0-0py0.tar.bz2\n/some/path/notabc-1.0.0-1py2.tar.bz2"

	got, err := ParseRenderOutput("abc", []byte(raw))
	assert.ErrorIs(t, err, ErrNameMismatch)
	assert.Nil(t, got)
}

func TestIdentityFilename(t *testing.T) {
	id := PackageIdentity{Name: "a-b-c", Version: "1.0.0", BuildString: "0py0"}
	assert.Equal(t, "a-b-c-1.0.0-0py0.tar.bz2", id.Filename())
}
