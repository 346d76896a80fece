// Package seed provides the embedded reference catalogs. The data is a
// build-time constant: users select from it but never edit it through
// normal flows.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mindwell-app/mindwell-engine/pkg/models"
)

//go:embed emotions.yaml
var emotionsYAML []byte

//go:embed activities.yaml
var activitiesYAML []byte

type catalogRow struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Color    string `yaml:"color"`
	Icon     string `yaml:"icon"`
}

// Emotions returns the canonical 56-emotion catalog.
func Emotions() ([]*models.CatalogEntry, error) {
	return parseCatalog(emotionsYAML, "emotions")
}

// Activities returns the canonical activity catalog.
func Activities() ([]*models.CatalogEntry, error) {
	return parseCatalog(activitiesYAML, "activities")
}

func parseCatalog(data []byte, name string) ([]*models.CatalogEntry, error) {
	var rows []catalogRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse embedded %s catalog: %w", name, err)
	}

	entries := make([]*models.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		entry := &models.CatalogEntry{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Color:    row.Color,
		}
		if row.Icon != "" {
			icon := row.Icon
			entry.Icon = &icon
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
