package compare

import (
	"strings"
)

// Formatter renders a comparison set
type Formatter interface {
	Format(compSet *ComparisonSet) (string, error)
}

// GetFormatter resolves a formatter by name; nil for unknown names
func GetFormatter(name string) Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "table", "text", "console":
		return &TableFormatter{}
	case "csv":
		return &CSVFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "yaml", "yml":
		return &YAMLFormatter{}
	}
	return nil
}
