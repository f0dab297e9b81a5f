package conda

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilastik/publish-conda-stack/internal/runner"
)

func searchConfig(labels ...string) Config {
	return Config{
		Backend: Conda,
		Channel: "test-channel",
		Labels:  labels,
	}
}

func identities(pairs ...[2]string) []PackageIdentity {
	ids := make([]PackageIdentity, len(pairs))
	for i, p := range pairs {
		ids[i] = PackageIdentity{Name: "abc", Version: p[0], BuildString: p[1]}
	}
	return ids
}

func TestCheckExistsAppendsPackageName(t *testing.T) {
	fake := &runner.Fake{
		OutputFunc: func(runner.Invocation) ([]byte, error) {
			return []byte(`{}`), nil
		},
	}

	_, err := CheckExists(context.Background(), fake, searchConfig("staging"), identities([2]string{"1.0.0", "py_1"}))
	require.NoError(t, err)

	require.Len(t, fake.Calls, 1)
	args := fake.Calls[0].Args
	assert.Equal(t, "abc", args[len(args)-1])
	assert.Contains(t, args, "test-channel/label/staging")
}

func TestCheckExistsNameAbsent(t *testing.T) {
	fake := &runner.Fake{
		OutputFunc: func(runner.Invocation) ([]byte, error) {
			return []byte(`{"otherpkg": [{"version": "1.0.0", "build": "py_1"}]}`), nil
		},
	}

	records, err := CheckExists(context.Background(), fake, searchConfig(), identities([2]string{"1.0.0", "py_1"}))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Found)
}

func TestCheckExistsPartialMatch(t *testing.T) {
	fake := &runner.Fake{
		OutputFunc: func(runner.Invocation) ([]byte, error) {
			return []byte(`{"abc": [
				{"version": "1.0.0", "build": "py_1", "channel": "test-channel"},
				{"version": "0.9.0", "build": "py_0"}
			]}`), nil
		},
	}

	ids := identities([2]string{"1.0.0", "py_1"}, [2]string{"1.0.0", "py_2"})
	records, err := CheckExists(context.Background(), fake, searchConfig(), ids)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, ids[0], records[0].Identity)
	assert.True(t, records[0].Found)
	assert.Equal(t, ids[1], records[1].Identity)
	assert.False(t, records[1].Found)
}

func TestCheckExistsZeroResultExitRecovered(t *testing.T) {
	fake := &runner.Fake{
		OutputFunc: func(runner.Invocation) ([]byte, error) {
			body := []byte(`{"exception_name": "PackagesNotFoundError", "error": "packages missing"}`)
			return body, &runner.ExitError{Command: "conda", ExitCode: 1}
		},
	}

	records, err := CheckExists(context.Background(), fake, searchConfig(), identities([2]string{"1.0.0", "py_1"}))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Found)
}

func TestCheckExistsUnexpectedExitPropagates(t *testing.T) {
	fake := &runner.Fake{
		OutputFunc: func(runner.Invocation) ([]byte, error) {
			return []byte(`{"exception_name": "CondaHTTPError"}`), &runner.ExitError{Command: "conda", ExitCode: 1}
		},
	}

	_, err := CheckExists(context.Background(), fake, searchConfig(), identities([2]string{"1.0.0", "py_1"}))
	assert.ErrorIs(t, err, ErrSearch)
}

func TestCheckExistsInvocationFailurePropagates(t *testing.T) {
	fake := &runner.Fake{
		OutputFunc: func(runner.Invocation) ([]byte, error) {
			return nil, errors.New("conda: executable file not found")
		},
	}

	_, err := CheckExists(context.Background(), fake, searchConfig(), identities([2]string{"1.0.0", "py_1"}))
	assert.ErrorIs(t, err, ErrSearch)
}
