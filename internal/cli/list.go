package cli

import (
	"context"
	"fmt"

	"github.com/ilastik/publish-conda-stack/internal/specs"
)

// Represents the 'list' command.
type ListCmd struct {
	Specs   string   `arg:"" help:"Path to a recipe specs YAML file." type:"existingfile"`
	Recipes []string `arg:"" optional:"" help:"Recipes to list (default: all)."`

	StartFrom string `help:"Recipe name to start from." env:"PUBLISH_START_FROM" placeholder:"NAME"`
}

// Executes the list command.
func (c *ListCmd) Run(ctx context.Context) error {
	file, err := specs.Load(c.Specs)
	if err != nil {
		return err
	}

	selected, err := specs.Select(file.Recipes, c.StartFrom, c.Recipes)
	if err != nil {
		return err
	}

	width := 0
	for _, r := range selected {
		width = max(width, len(r.Name))
	}
	for _, r := range selected {
		fmt.Printf("%-*s : %s (%s)\n", width, r.Name, r.RecipeRepo, r.Tag)
	}
	return nil
}
