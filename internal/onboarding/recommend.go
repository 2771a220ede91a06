package onboarding

import (
	"github.com/abhisek/spinlab/internal/catalog"
)

// Recommend picks the path whose level is closest to the chosen skill level.
// Ties go to the path sharing more preferred styles, then to the lower path
// ID. It returns false when no skill level is set or the catalog has no paths.
func Recommend(a Answers, cat *catalog.Catalog) (catalog.Path, bool) {
	if a.SkillLevel == "" {
		return catalog.Path{}, false
	}
	target := int(a.SkillLevel.Tier())
	preferred := make(map[catalog.Genre]bool, len(a.Styles))
	for _, s := range a.Styles {
		preferred[s] = true
	}

	var best catalog.Path
	found := false
	bestDist, bestOverlap := 0, 0
	for _, p := range cat.Paths() {
		dist := abs(int(p.Level) - target)
		overlap := 0
		for _, s := range p.Styles {
			if preferred[s] {
				overlap++
			}
		}
		better := !found ||
			dist < bestDist ||
			(dist == bestDist && overlap > bestOverlap) ||
			(dist == bestDist && overlap == bestOverlap && p.ID < best.ID)
		if better {
			best, bestDist, bestOverlap, found = p, dist, overlap, true
		}
	}
	return best, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
