package specs

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Narrows the full recipe list to the recipes selected for this run.
//
// startFrom truncates the list to begin at the named recipe. selected keeps
// only the named recipes, in canonical specs-file order; when the user's
// requested order differs from the file order a warning is logged. An empty
// selection means all recipes.
func Select(all []Recipe, startFrom string, selected []string) ([]Recipe, error) {
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name
	}

	if startFrom != "" {
		idx := slices.Index(names, startFrom)
		if idx < 0 {
			return nil, fmt.Errorf("%w: start-from recipe %q not found in specs file", ErrInvalidSelection, startFrom)
		}
		all = all[idx:]
		names = names[idx:]
	}

	if len(selected) == 0 {
		return all, nil
	}

	var invalid []string
	for _, name := range selected {
		if !slices.Contains(names, name) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: not listed in the specs file: %s", ErrInvalidSelection, strings.Join(invalid, ", "))
	}

	filtered := make([]Recipe, 0, len(selected))
	filteredNames := make([]string, 0, len(selected))
	for _, r := range all {
		if slices.Contains(selected, r.Name) {
			filtered = append(filtered, r)
			filteredNames = append(filteredNames, r.Name)
		}
	}

	if !slices.Equal(filteredNames, selected) {
		slog.Warn("recipe list was not given in specs-file order",
			"order", strings.Join(filteredNames, ", "))
	}

	return filtered, nil
}
