package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

// defaultZones seed the portal when no zones file is configured.
var defaultZones = []model.Zone{
	{
		ID:    "1",
		Title: "Tech & AI",
		Sources: []model.Source{
			{Name: "TechCrunch", URL: "https://techcrunch.com"},
			{Name: "OpenAI", URL: "https://openai.com/blog"},
		},
	},
	{
		ID:    "2",
		Title: "Business",
		Sources: []model.Source{
			{Name: "Bloomberg", URL: "https://www.bloomberg.com"},
			{Name: "WSJ", URL: "https://www.wsj.com"},
		},
	},
}

// LoadZones reads zone definitions from a YAML file, falling back to the
// built-in defaults when no path is given. Duplicate sources inside a zone
// are removed by URL.
func LoadZones(path string) ([]model.Zone, error) {
	zones := defaultZones
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading zones file: %w", err)
		}

		var parsed struct {
			Zones []model.Zone `yaml:"zones"`
		}
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parsing zones file: %w", err)
		}
		zones = parsed.Zones
	}

	for i := range zones {
		if zones[i].ID == "" {
			return nil, fmt.Errorf("zone %q has no id", zones[i].Title)
		}
		zones[i].Sources = model.DedupSources(zones[i].Sources)
	}
	return zones, nil
}
