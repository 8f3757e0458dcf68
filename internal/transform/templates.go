package transform

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Template is a named, pre-built list of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// TemplateRegistry holds the named templates available for comparison
type TemplateRegistry struct {
	templates map[string]Template
}

// NewTemplateRegistry creates a registry with the built-in templates
func NewTemplateRegistry() *TemplateRegistry {
	tr := &TemplateRegistry{templates: make(map[string]Template)}
	for _, t := range CreateBuiltInTemplates() {
		tr.Register(t)
	}
	return tr
}

// Register adds or replaces a template
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[t.Name] = t
}

// Get returns the named template
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[name]
	return t, ok
}

// List returns all templates sorted by name
func (tr *TemplateRegistry) List() []Template {
	out := make([]Template, 0, len(tr.templates))
	for _, t := range tr.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ApplyTemplate applies the named template to base. The result carries the
// template's name.
func (tr *TemplateRegistry) ApplyTemplate(base *Plan, name string) (*Plan, error) {
	t, ok := tr.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", name)
	}
	plan, err := ApplyTransforms(base, t.Transforms)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	plan.Name = t.Name
	return plan, nil
}

// CreateBuiltInTemplates returns the standard what-if scenarios
func CreateBuiltInTemplates() []Template {
	templates := []Template{
		{
			Name:        "progressive",
			Description: "Same level and months, indexed to the wage index",
			Transforms:  []PlanTransform{&SwitchType{Type: domain.StrategyProgressive}},
		},
		{
			Name:        "fixed",
			Description: "Same level and months, fixed contribution amount",
			Transforms:  []PlanTransform{&SwitchType{Type: domain.StrategyFixed}},
		},
		{
			Name:        "level_up_2",
			Description: "Two wage levels higher",
			Transforms:  []PlanTransform{&AdjustLevel{Delta: decimal.NewFromInt(2)}},
		},
		{
			Name:        "level_down_2",
			Description: "Two wage levels lower",
			Transforms:  []PlanTransform{&AdjustLevel{Delta: decimal.NewFromInt(-2)}},
		},
		{
			Name:        "delay_6mo",
			Description: "Start six months later",
			Transforms:  []PlanTransform{&DelayStart{Months: 6}},
		},
		{
			Name:        "delay_12mo",
			Description: "Start a year later",
			Transforms:  []PlanTransform{&DelayStart{Months: 12}},
		},
		{
			Name:        "shorter_12mo",
			Description: "Contribute twelve fewer months",
			Transforms:  []PlanTransform{&AdjustMonths{Delta: -12}},
		},
	}
	for age := 60; age <= 64; age++ {
		templates = append(templates, Template{
			Name:        fmt.Sprintf("retire_%d", age),
			Description: fmt.Sprintf("Same contributions, retiring at %d", age),
			Transforms:  []PlanTransform{&SetRetirementAge{Age: age}},
		})
	}
	return templates
}
