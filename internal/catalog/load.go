package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type fileItem struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Genre         string   `yaml:"genre"`
	Tier          int      `yaml:"tier"`
	Prerequisites []string `yaml:"prerequisites"`
	XP            int      `yaml:"xp"`
	Module        string   `yaml:"module"`
	Path          string   `yaml:"path"`
	VideoSeconds  int      `yaml:"video_seconds"`
}

type fileModule struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

type filePath struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Level       int      `yaml:"level"`
	Styles      []string `yaml:"styles"`
}

type file struct {
	Paths   []filePath   `yaml:"paths"`
	Modules []fileModule `yaml:"modules"`
	Items   []fileItem   `yaml:"items"`
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Only malformed YAML is an error; graph
// problems are left for Validate.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	paths := make([]Path, 0, len(f.Paths))
	for _, p := range f.Paths {
		styles := make([]Genre, 0, len(p.Styles))
		for _, s := range p.Styles {
			styles = append(styles, Genre(s))
		}
		paths = append(paths, Path{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Level:       Tier(p.Level),
			Styles:      styles,
		})
	}

	modules := make([]Module, 0, len(f.Modules))
	for _, m := range f.Modules {
		modules = append(modules, Module{ID: m.ID, PathID: m.Path, Name: m.Name})
	}

	items := make([]SkillItem, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, SkillItem{
			ID:            it.ID,
			Name:          it.Name,
			Description:   it.Description,
			Genre:         Genre(it.Genre),
			Tier:          Tier(it.Tier),
			Prerequisites: it.Prerequisites,
			XPReward:      it.XP,
			GroupID:       it.Module,
			PathID:        it.Path,
			VideoSeconds:  it.VideoSeconds,
		})
	}

	return New(items, modules, paths), nil
}

// Default returns the built-in trick catalog.
func Default() *Catalog {
	c, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded seed is malformed: %v", err))
	}
	return c
}
