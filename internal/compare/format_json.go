package compare

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// YAMLFormatter formats comparison results as YAML
type YAMLFormatter struct{}

// Format generates YAML output for comparison results
func (yf *YAMLFormatter) Format(compSet *ComparisonSet) (string, error) {
	data, err := yaml.Marshal(compSet)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
