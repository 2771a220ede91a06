package achievements

import (
	"sort"

	"github.com/abhisek/spinlab/internal/catalog"
)

// DepthMap holds the DAG depth for each item and the quartile boundaries.
type DepthMap struct {
	Depths     map[string]int // itemID → depth (longest path from root)
	Boundaries [3]int         // Q1/Q2, Q2/Q3, Q3/Q4 boundaries
}

// ComputeDepthMap collects item depths from the catalog and computes
// quartile boundaries. Items excluded from the topological order (cycles,
// dangling prerequisites) have no depth.
func ComputeDepthMap(cat *catalog.Catalog) *DepthMap {
	depths := make(map[string]int)
	for _, it := range cat.TopologicalOrder() {
		if d, ok := cat.Depth(it.ID); ok {
			depths[it.ID] = d
		}
	}

	vals := make([]int, 0, len(depths))
	for _, d := range depths {
		vals = append(vals, d)
	}
	sort.Ints(vals)

	n := len(vals)
	var boundaries [3]int
	if n > 0 {
		boundaries = [3]int{
			vals[n/4],
			vals[n/2],
			vals[3*n/4],
		}
	}

	return &DepthMap{Depths: depths, Boundaries: boundaries}
}

// RarityForDepth maps a depth onto the quartiles.
func (dm *DepthMap) RarityForDepth(depth int) Rarity {
	switch {
	case depth > dm.Boundaries[2]:
		return RarityLegendary
	case depth > dm.Boundaries[1]:
		return RarityEpic
	case depth > dm.Boundaries[0]:
		return RarityRare
	default:
		return RarityCommon
	}
}

// RarityForItem returns the rarity based on an item's DAG depth.
func (dm *DepthMap) RarityForItem(itemID string) Rarity {
	return dm.RarityForDepth(dm.Depths[itemID])
}

// RarityForPath uses the deepest item of the path.
func (dm *DepthMap) RarityForPath(cat *catalog.Catalog, pathID string) Rarity {
	deepest := 0
	for _, it := range cat.ByPath(pathID) {
		if d := dm.Depths[it.ID]; d > deepest {
			deepest = d
		}
	}
	return dm.RarityForDepth(deepest)
}
