package convert

import (
	"fmt"
	"strings"

	"github.com/klytics/stallkit/internal/stalls"
)

// Target pairs a category group with the file name it will be written to.
type Target struct {
	FileName string
	Group    stalls.Group
}

// Plan names the output file of every group. Names are the sanitized category
// plus Extension; an empty stem falls back to opts.FallbackName. Two groups
// resolving to the same name fail with ErrNameCollision before anything is written.
func Plan(groups []stalls.Group, opts Options) ([]Target, error) {
	targets := make([]Target, 0, len(groups))
	owners := make(map[string]string, len(groups))

	for _, g := range groups {
		stem := opts.Sanitize.Filename(g.Category)
		if stem == "" {
			stem = opts.Sanitize.Filename(opts.fallbackName())
		}
		if stem == "" {
			return nil, fmt.Errorf("category %q has no usable file name and the fallback name is empty after sanitizing", g.Category)
		}

		name := stem + Extension
		if prev, taken := owners[name]; taken {
			if strings.TrimSpace(prev) == strings.TrimSpace(g.Category) {
				return nil, fmt.Errorf("%w: %q and %q both become %s, check for leading or trailing spaces in Category", ErrNameCollision, prev, g.Category, name)
			}
			return nil, fmt.Errorf("%w: %q and %q both become %s", ErrNameCollision, prev, g.Category, name)
		}
		owners[name] = g.Category
		targets = append(targets, Target{FileName: name, Group: g})
	}

	return targets, nil
}
