package summary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SummaryConfig records where the summarized numbers came from.
type SummaryConfig struct {
	ResultsPath string `yaml:"resultspath"`
	Model       string `yaml:"model,omitempty"`
	Prompt      string `yaml:"prompt"`
}

// SummarySpec is the machine-readable companion of the text report.
type SummarySpec struct {
	Config SummaryConfig `yaml:"config"`
	Report *Report       `yaml:"report"`
}

// SaveYAML writes the report as a YAML document next to the text one, for
// tooling that wants the numbers without scraping prose.
func SaveYAML(path, resultsPath string, rep *Report) error {
	doc := SummarySpec{
		Config: SummaryConfig{
			ResultsPath: resultsPath,
			Model:       rep.Model,
			Prompt:      "Describe every NMR graph on the page as a JSON array",
		},
		Report: rep,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML summary: %w", err)
	}
	return nil
}
