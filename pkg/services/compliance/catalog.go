package compliance

import (
	"embed"
	"fmt"
	"sort"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var embeddedCatalogs embed.FS

type catalogFile struct {
	Platform string `yaml:"platform"`
	Controls []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Framework   string `yaml:"framework"`
		Severity    string `yaml:"severity"`
		Description string `yaml:"description"`
		Rule        string `yaml:"rule"`
		Remediation string `yaml:"remediation"`
	} `yaml:"controls"`
}

// Catalog holds the control checklist of every auditable platform,
// keyed by platform. Controls are data: each check is a CEL rule over
// the snapshot config, not a code branch.
type Catalog struct {
	controls map[domain.Platform][]domain.Control
}

// LoadEmbeddedCatalog parses the YAML catalogs compiled into the
// binary.
func LoadEmbeddedCatalog() (*Catalog, error) {
	entries, err := embeddedCatalogs.ReadDir("catalogs")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalogs: %w", err)
	}

	catalog := &Catalog{controls: make(map[domain.Platform][]domain.Control)}
	for _, entry := range entries {
		raw, err := embeddedCatalogs.ReadFile("catalogs/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", entry.Name(), err)
		}
		if err := catalog.addFile(entry.Name(), raw); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// ParseCatalog loads a single catalog document, used for operator
// supplied catalog files.
func ParseCatalog(name string, raw []byte) (*Catalog, error) {
	catalog := &Catalog{controls: make(map[domain.Platform][]domain.Control)}
	if err := catalog.addFile(name, raw); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Extend appends another catalog's controls, used to overlay operator
// supplied catalogs on the embedded one.
func (c *Catalog) Extend(other *Catalog) {
	for platform, controls := range other.controls {
		c.controls[platform] = append(c.controls[platform], controls...)
	}
}

func (c *Catalog) addFile(name string, raw []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}

	platform := domain.Platform(file.Platform)
	if !platform.Auditable() {
		return fmt.Errorf("catalog %s: platform %q has no control support", name, file.Platform)
	}

	for _, entry := range file.Controls {
		control := domain.Control{
			ID:          entry.ID,
			Name:        entry.Name,
			Framework:   domain.Framework(entry.Framework),
			Platform:    platform,
			Severity:    domain.Severity(entry.Severity),
			Description: entry.Description,
			Rule:        entry.Rule,
			Remediation: entry.Remediation,
		}
		if control.ID == "" || control.Rule == "" {
			return fmt.Errorf("catalog %s: control %q missing id or rule", name, entry.Name)
		}
		if !control.Severity.IsValid() {
			return fmt.Errorf("catalog %s: control %s has invalid severity %q", name, control.ID, entry.Severity)
		}
		c.controls[platform] = append(c.controls[platform], control)
	}
	return nil
}

// Controls returns the catalog of one platform, optionally restricted
// to a framework.
func (c *Catalog) Controls(platform domain.Platform, framework domain.Framework) []domain.Control {
	controls := make([]domain.Control, 0)
	for _, control := range c.controls[platform] {
		if framework != "" && control.Framework != framework {
			continue
		}
		controls = append(controls, control)
	}
	return controls
}

// Platforms lists the platforms the catalog covers, sorted.
func (c *Catalog) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(c.controls))
	for platform := range c.controls {
		platforms = append(platforms, platform)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
