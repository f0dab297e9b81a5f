package publish

import "errors"

var (
	ErrBuild           = errors.New("build failed")
	ErrUpload          = errors.New("upload failed")
	ErrNoOutputs       = errors.New("recipe rendered no packages")
	ErrArtifactMissing = errors.New("built package not found")
)
