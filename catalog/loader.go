package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/darkfieldworks/lensing-simulator/model"
)

// LoadOptions narrows which rows a Load call keeps. An empty OnlyIDs
// keeps everything not listed in SkipIDs.
type LoadOptions struct {
	OnlyIDs []int64
	SkipIDs []int64
}

// LoadSummary reports what a Load call did. It's mainly useful for
// logging from main().
type LoadSummary struct {
	LoadedIDs []int64
	Filtered  int
}

// Load reads a JSON array of catalog rows from r and adds the selected
// ones to the catalog. The JSON layout is a demo convenience and not a
// survey catalog format; production catalogs arrive through whatever
// loader the survey pipeline provides.
//
// Load fails on decoding errors and on rows the catalog rejects
// (duplicates, negative redshift); row selection via opts is not an
// error.
func Load(c *Catalog, r io.Reader, opts LoadOptions) (*LoadSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("Load: catalog is nil")
	}

	var rows []*model.CatalogEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("Load: decode failed: %w", err)
	}

	only := idSet(opts.OnlyIDs)
	skip := idSet(opts.SkipIDs)

	summary := &LoadSummary{}
	for _, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("Load: null catalog row")
		}
		if len(only) > 0 && !only[row.ID] {
			summary.Filtered++
			continue
		}
		if skip[row.ID] {
			summary.Filtered++
			continue
		}
		if err := c.AddEntry(row); err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
		summary.LoadedIDs = append(summary.LoadedIDs, row.ID)
	}
	return summary, nil
}

func idSet(ids []int64) map[int64]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
