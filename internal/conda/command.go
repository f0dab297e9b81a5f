package conda

// Run-wide configuration shared by every recipe.
type Config struct {
	Backend       Backend  // Selected tool family.
	ChannelArgs   []string // Source channel flags, as "-c <channel>" pairs.
	Channel       string   // Destination channel, label-stripped.
	Labels        []string // Active labels, ordered and deduplicated.
	VariantConfig string   // Optional variant config path ("-m <path>").
	Token         string   // Optional anaconda upload token.
}

// Argument vector for rendering a recipe.
//
// Rendering is not implemented by the mamba backend, so the primary tool is
// used regardless of configuration. Callers append the recipe subdirectory.
func (c Config) RenderArgs() []string {
	args := []string{primaryTool, "render", "--output"}
	args = append(args, c.ChannelArgs...)
	args = append(args, c.variantArgs()...)
	return args
}

// Argument vector for searching the destination channel.
//
// The base channel is queried along with every active label's sub-channel,
// in label order. Callers append the package name.
func (c Config) SearchArgs() []string {
	args := []string{
		c.Backend.searchBinary(),
		"search",
		"--json",
		"--full-name",
		"--override-channels",
		"--channel", c.Channel,
	}
	for _, label := range c.Labels {
		args = append(args, "--channel", c.Channel+"/label/"+label)
	}
	return args
}

// Argument vector for building a recipe.
//
// Callers append any recipe-specific build flags and the recipe
// subdirectory.
func (c Config) BuildArgs() []string {
	args := c.Backend.buildCommand()
	args = append(args, c.ChannelArgs...)
	args = append(args, c.variantArgs()...)
	return args
}

func (c Config) variantArgs() []string {
	if c.VariantConfig == "" {
		return nil
	}
	return []string{"-m", c.VariantConfig}
}
