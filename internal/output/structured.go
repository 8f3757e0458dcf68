package output

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(report *Report) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// YAMLFormatter formats reports as YAML; a tables-only report produces a
// document LoadTables reads back.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(report *Report) ([]byte, error) {
	if report.Tables != nil && report.Projection == nil && report.Search == nil &&
		report.Reconstruction == nil && len(report.Schedule) == 0 && len(report.AgeSensitivity) == 0 {
		return yaml.Marshal(report.Tables)
	}
	return yaml.Marshal(report)
}
