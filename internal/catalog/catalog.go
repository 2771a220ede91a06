package catalog

import (
	"slices"
	"sort"

	"github.com/abhisek/spinlab/internal/errs"
)

// Catalog is an immutable, indexed view of the trick graph.
type Catalog struct {
	items      []SkillItem
	byID       map[string]*SkillItem
	byModule   map[string][]SkillItem
	byPath     map[string][]SkillItem
	byGenre    map[Genre][]SkillItem
	dependents map[string][]string
	topoOrder  []SkillItem
	depth      map[string]int

	modules    []Module
	moduleByID map[string]*Module
	paths      []Path
	pathByID   map[string]*Path
}

// New builds a catalog from its parts. It never fails: structural problems
// such as dangling prerequisites or cycles are reported by Validate, and the
// affected items simply never unlock.
func New(items []SkillItem, modules []Module, paths []Path) *Catalog {
	c := &Catalog{
		items:      slices.Clone(items),
		byID:       make(map[string]*SkillItem, len(items)),
		byModule:   make(map[string][]SkillItem),
		byPath:     make(map[string][]SkillItem),
		byGenre:    make(map[Genre][]SkillItem),
		dependents: make(map[string][]string),
		depth:      make(map[string]int, len(items)),
		modules:    slices.Clone(modules),
		moduleByID: make(map[string]*Module, len(modules)),
		paths:      slices.Clone(paths),
		pathByID:   make(map[string]*Path, len(paths)),
	}

	for i := range c.modules {
		c.moduleByID[c.modules[i].ID] = &c.modules[i]
	}
	for i := range c.paths {
		c.pathByID[c.paths[i].ID] = &c.paths[i]
	}

	// First definition wins on duplicate IDs.
	for i := range c.items {
		it := &c.items[i]
		if it.PathID == "" {
			if m, ok := c.moduleByID[it.GroupID]; ok {
				it.PathID = m.PathID
			}
		}
		if _, dup := c.byID[it.ID]; !dup {
			c.byID[it.ID] = it
		}
	}

	for i := range c.items {
		it := &c.items[i]
		if c.byID[it.ID] != it {
			continue
		}
		for _, prereqID := range it.Prerequisites {
			c.dependents[prereqID] = append(c.dependents[prereqID], it.ID)
		}
	}

	c.buildTopoOrder()

	// Group by module, path and genre, easiest tier first, then declaration order.
	grouped := make(map[string]bool, len(c.items))
	for _, it := range c.items {
		if grouped[it.ID] {
			continue
		}
		grouped[it.ID] = true
		c.byModule[it.GroupID] = append(c.byModule[it.GroupID], it)
		c.byPath[it.PathID] = append(c.byPath[it.PathID], it)
		c.byGenre[it.Genre] = append(c.byGenre[it.Genre], it)
	}
	for _, group := range []map[string][]SkillItem{c.byModule, c.byPath} {
		for _, items := range group {
			sortByTier(items)
		}
	}
	for _, items := range c.byGenre {
		sortByTier(items)
	}

	return c
}

func sortByTier(items []SkillItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Tier < items[j].Tier
	})
}

// buildTopoOrder runs Kahn's algorithm over the prerequisite edges. Items on
// a cycle, behind a cycle, or behind a dangling reference never reach
// in-degree zero and are left out of the order. Depth is the longest path
// from a root.
func (c *Catalog) buildTopoOrder() {
	inDegree := make(map[string]int, len(c.byID))
	for id, it := range c.byID {
		inDegree[id] = len(it.Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		it := c.byID[id]
		c.topoOrder = append(c.topoOrder, *it)

		d := 0
		for _, prereqID := range it.Prerequisites {
			if pd, ok := c.depth[prereqID]; ok && pd+1 > d {
				d = pd + 1
			}
		}
		c.depth[id] = d

		deps := slices.Clone(c.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			if _, ok := inDegree[depID]; !ok {
				continue
			}
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
}

// Get returns an item by ID.
func (c *Catalog) Get(id string) (SkillItem, error) {
	it, ok := c.byID[id]
	if !ok {
		return SkillItem{}, errs.NotFound("item", id)
	}
	return *it, nil
}

// Has reports whether an item with the given ID exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Items returns all items in declaration order.
func (c *Catalog) Items() []SkillItem {
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ByModule returns the items of a module, easiest first.
func (c *Catalog) ByModule(moduleID string) []SkillItem {
	return slices.Clone(c.byModule[moduleID])
}

// ByPath returns the items of a path, easiest first.
func (c *Catalog) ByPath(pathID string) []SkillItem {
	return slices.Clone(c.byPath[pathID])
}

// ByGenre returns the items of a genre, easiest first.
func (c *Catalog) ByGenre(g Genre) []SkillItem {
	return slices.Clone(c.byGenre[g])
}

// Modules returns all modules in declaration order.
func (c *Catalog) Modules() []Module {
	return slices.Clone(c.modules)
}

// ModulesOf returns the modules belonging to a path.
func (c *Catalog) ModulesOf(pathID string) []Module {
	var result []Module
	for _, m := range c.modules {
		if m.PathID == pathID {
			result = append(result, m)
		}
	}
	return result
}

// Module returns a module by ID.
func (c *Catalog) Module(id string) (Module, error) {
	m, ok := c.moduleByID[id]
	if !ok {
		return Module{}, errs.NotFound("module", id)
	}
	return *m, nil
}

// Paths returns all paths in declaration order.
func (c *Catalog) Paths() []Path {
	return slices.Clone(c.paths)
}

// Path returns a path by ID.
func (c *Catalog) Path(id string) (Path, error) {
	p, ok := c.pathByID[id]
	if !ok {
		return Path{}, errs.NotFound("path", id)
	}
	return *p, nil
}

// Prerequisites returns the direct prerequisite items that exist in the catalog.
func (c *Catalog) Prerequisites(id string) []SkillItem {
	it, ok := c.byID[id]
	if !ok {
		return nil
	}
	result := make([]SkillItem, 0, len(it.Prerequisites))
	for _, prereqID := range it.Prerequisites {
		if p, ok := c.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns items that directly require the given item.
func (c *Catalog) Dependents(id string) []SkillItem {
	ids := c.dependents[id]
	result := make([]SkillItem, 0, len(ids))
	for _, depID := range ids {
		if it, ok := c.byID[depID]; ok {
			result = append(result, *it)
		}
	}
	return result
}

// Roots returns items with no prerequisites.
func (c *Catalog) Roots() []SkillItem {
	var result []SkillItem
	for _, it := range c.items {
		if !it.HasPrerequisites() {
			result = append(result, it)
		}
	}
	return result
}

// TopologicalOrder returns every reachable item in dependency order.
func (c *Catalog) TopologicalOrder() []SkillItem {
	return slices.Clone(c.topoOrder)
}

// Depth returns the longest prerequisite chain leading to id. The second
// result is false for unknown or unreachable items.
func (c *Catalog) Depth(id string) (int, bool) {
	d, ok := c.depth[id]
	return d, ok
}
