package conda

import "fmt"

// The primary tool. Rendering always goes through it, and the mamba build
// verb is a plugin subcommand of it rather than a verb of the mamba binary.
const primaryTool = "conda"

// A build/search tool implementation.
//
// Exactly two variants exist, Conda and Mamba. Each carries its own
// argument-building strategy; call sites never compare backend names.
type Backend interface {

	// Name of the backend as configured ("conda" or "mamba").
	String() string

	// Binary used for the search verb.
	searchBinary() string

	// Leading tokens of the build verb.
	buildCommand() []string
}

var (
	Conda Backend = condaBackend{}
	Mamba Backend = mambaBackend{}
)

type condaBackend struct{}

func (condaBackend) String() string         { return "conda" }
func (condaBackend) searchBinary() string   { return primaryTool }
func (condaBackend) buildCommand() []string { return []string{primaryTool, "build"} }

type mambaBackend struct{}

func (mambaBackend) String() string       { return "mamba" }
func (mambaBackend) searchBinary() string { return "mamba" }

// mamba builds go through boa, which is invoked as a conda plugin
// ("conda mambabuild"), not through the mamba binary.
func (mambaBackend) buildCommand() []string { return []string{primaryTool, "mambabuild"} }

// Resolves a configured backend name. The empty string selects conda.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "", "conda":
		return Conda, nil
	case "mamba":
		return Mamba, nil
	default:
		return nil, fmt.Errorf("%w: %q (only conda and mamba are supported)", ErrUnknownBackend, name)
	}
}
