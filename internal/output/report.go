package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/reconstruct"
	"github.com/shopspring/decimal"
)

// Report bundles whatever a command produced. Formatters render the
// sections that are set and skip the rest.
type Report struct {
	Title          string                       `json:"title" yaml:"title"`
	TablesVersion  string                       `json:"tablesVersion,omitempty" yaml:"tables_version,omitempty"`
	Profile        *domain.WorkerProfile        `json:"profile,omitempty" yaml:"profile,omitempty"`
	Projection     *domain.BenefitResult        `json:"projection,omitempty" yaml:"projection,omitempty"`
	AgeSensitivity []*domain.BenefitResult      `json:"ageSensitivity,omitempty" yaml:"age_sensitivity,omitempty"`
	Search         *optimize.SearchResult       `json:"search,omitempty" yaml:"search,omitempty"`
	Reconstruction *reconstruct.Reconstruction  `json:"reconstruction,omitempty" yaml:"reconstruction,omitempty"`
	Schedule       []domain.MonthlyContribution `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Tables         *domain.StatutoryTables      `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var hundred = decimal.NewFromInt(100)

var formatters = map[string]Formatter{
	"table": TableFormatter{},
	"csv":   CSVFormatter{},
	"json":  JSONFormatter{Pretty: true},
	"yaml":  YAMLFormatter{},
}

var aliases = map[string]string{
	"console": "table",
	"text":    "table",
	"yml":     "yaml",
}

// GetFormatterByName returns the formatter for a name or alias, nil if unknown
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	return formatters[name]
}

// AvailableFormatterNames lists the canonical formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report and saves it to a timestamped file in
// the working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format report: %w", err)
	}
	filename := fmt.Sprintf("vcpgo_%s_%s.%s", f.Name(), time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatPension renders a monthly pension, or the failure reason when the
// result has none.
func FormatPension(r *domain.BenefitResult) string {
	if r.Eligible() {
		return FormatCurrency(*r.MonthlyPension)
	}
	if r != nil && r.Failure != nil {
		return string(r.Failure.Kind) + " failure"
	}
	return "n/a"
}
