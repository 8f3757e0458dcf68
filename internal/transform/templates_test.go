package transform

import (
	"testing"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

func TestBuiltInTemplates(t *testing.T) {
	registry := NewTemplateRegistry()

	templates := registry.List()
	if len(templates) != 12 {
		t.Fatalf("expected 12 templates, got %d", len(templates))
	}
	for i := 1; i < len(templates); i++ {
		if templates[i-1].Name >= templates[i].Name {
			t.Errorf("templates not sorted: %s before %s", templates[i-1].Name, templates[i].Name)
		}
	}
	for _, tmpl := range templates {
		if tmpl.Description == "" || len(tmpl.Transforms) == 0 {
			t.Errorf("template %s is incomplete", tmpl.Name)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := NewTemplateRegistry()
	base := createTestPlan()

	tests := []struct {
		template string
		check    func(p *Plan) bool
	}{
		{"progressive", func(p *Plan) bool { return p.Type == domain.StrategyProgressive }},
		{"fixed", func(p *Plan) bool { return p.Type == domain.StrategyFixed }},
		{"level_up_2", func(p *Plan) bool { return p.WageLevel.Equal(decimal.NewFromInt(12)) }},
		{"level_down_2", func(p *Plan) bool { return p.WageLevel.Equal(decimal.NewFromInt(8)) }},
		{"delay_12mo", func(p *Plan) bool { return p.Start == domain.NewYearMonth(2026, time.January) }},
		{"shorter_12mo", func(p *Plan) bool { return p.Months == 46 }},
		{"retire_60", func(p *Plan) bool { return p.Profile.RetirementAge == 60 }},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := registry.ApplyTemplate(base, tt.template)
			if err != nil {
				t.Fatalf("ApplyTemplate failed: %v", err)
			}
			if got.Name != tt.template {
				t.Errorf("Name = %s, want %s", got.Name, tt.template)
			}
			if !tt.check(got) {
				t.Errorf("template %s produced %s", tt.template, got)
			}
		})
	}

	if _, err := registry.ApplyTemplate(base, "retire_70"); err == nil {
		t.Error("Expected error for unknown template")
	}

	low := base.DeepCopy()
	low.WageLevel = decimal.NewFromInt(2)
	if _, err := registry.ApplyTemplate(low, "level_down_2"); err == nil {
		t.Error("Expected error when the level would drop to zero")
	}
}
