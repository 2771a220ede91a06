package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the catalog for structural issues. Problems are returned
// as a single combined error. The engine tolerates every one of them
// (affected items stay locked), so callers typically log the result at
// ingestion time rather than refuse to start.
func (c *Catalog) Validate() error {
	return validateItems(c.items, c.modules, c.paths)
}

func validateItems(items []SkillItem, modules []Module, paths []Path) error {
	var errs []string

	pathSet := make(map[string]bool, len(paths))
	for _, p := range paths {
		if pathSet[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate path ID: %q", p.ID))
		}
		pathSet[p.ID] = true
	}

	moduleSet := make(map[string]bool, len(modules))
	for _, m := range modules {
		if moduleSet[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		moduleSet[m.ID] = true
		if !pathSet[m.PathID] {
			errs = append(errs, fmt.Sprintf("module %q references nonexistent path %q", m.ID, m.PathID))
		}
	}

	idSet := make(map[string]bool, len(items))
	for _, it := range items {
		if idSet[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate item ID: %q", it.ID))
		}
		idSet[it.ID] = true
	}

	for _, it := range items {
		for _, prereqID := range it.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("item %q references nonexistent prerequisite %q", it.ID, prereqID))
			}
		}
		if !it.Tier.Valid() {
			errs = append(errs, fmt.Sprintf("item %q: tier must be in [%d, %d], got %d", it.ID, MinTier, MaxTier, it.Tier))
		}
		if it.XPReward < 0 {
			errs = append(errs, fmt.Sprintf("item %q: xp reward must be >= 0, got %d", it.ID, it.XPReward))
		}
		if it.GroupID != "" && !moduleSet[it.GroupID] {
			errs = append(errs, fmt.Sprintf("item %q references nonexistent module %q", it.ID, it.GroupID))
		}
		if it.PathID != "" && !pathSet[it.PathID] {
			errs = append(errs, fmt.Sprintf("item %q references nonexistent path %q", it.ID, it.PathID))
		}
	}

	if cycle := cycleNodes(items, idSet); len(cycle) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving items: %s", strings.Join(cycle, ", ")))
	}

	hasRoot := false
	for _, it := range items {
		if !it.HasPrerequisites() {
			hasRoot = true
			break
		}
	}
	if len(items) > 0 && !hasRoot {
		errs = append(errs, "no root items found (at least one item must have no prerequisites)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// cycleNodes returns the IDs left over after Kahn's algorithm, ignoring
// dangling references so that they are not misreported as cycles.
func cycleNodes(items []SkillItem, idSet map[string]bool) []string {
	inDegree := make(map[string]int, len(items))
	adj := make(map[string][]string)
	for _, it := range items {
		if _, seen := inDegree[it.ID]; seen {
			continue
		}
		deg := 0
		for _, prereqID := range it.Prerequisites {
			if idSet[prereqID] {
				deg++
				adj[prereqID] = append(adj[prereqID], it.ID)
			}
		}
		inDegree[it.ID] = deg
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, depID := range adj[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	var stuck []string
	for id, deg := range inDegree {
		if deg > 0 {
			stuck = append(stuck, id)
		}
	}
	sort.Strings(stuck)
	return stuck
}
