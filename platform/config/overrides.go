package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogOverrides adjusts the region catalog without touching library metadata.
//
//	countryNames:
//	  XK: Kosovo
//	excludeRegions: [AC, TA]
type CatalogOverrides struct {
	CountryNames   map[string]string `yaml:"countryNames"`
	ExcludeRegions []string          `yaml:"excludeRegions"`
}

// LoadCatalogOverrides reads the YAML overrides file. An empty path yields empty overrides.
func LoadCatalogOverrides(path string) (CatalogOverrides, error) {
	if strings.TrimSpace(path) == "" {
		return CatalogOverrides{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogOverrides{}, fmt.Errorf("read catalog overrides: %w", err)
	}

	var raw CatalogOverrides
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return CatalogOverrides{}, fmt.Errorf("parse catalog overrides: %w", err)
	}

	out := CatalogOverrides{CountryNames: make(map[string]string, len(raw.CountryNames))}
	for code, name := range raw.CountryNames {
		out.CountryNames[strings.ToUpper(strings.TrimSpace(code))] = strings.TrimSpace(name)
	}
	for _, code := range raw.ExcludeRegions {
		if trimmed := strings.ToUpper(strings.TrimSpace(code)); trimmed != "" {
			out.ExcludeRegions = append(out.ExcludeRegions, trimmed)
		}
	}
	return out, nil
}

// IsExcluded reports whether the region is filtered out of the catalog.
func (o CatalogOverrides) IsExcluded(region string) bool {
	for _, code := range o.ExcludeRegions {
		if code == region {
			return true
		}
	}
	return false
}
