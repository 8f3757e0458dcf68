package transform

import (
	"testing"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

func TestParseTransformSpec(t *testing.T) {
	tests := []struct {
		spec       string
		wantName   string
		wantParams map[string]string
		wantErr    bool
	}{
		{"adjust_level:delta=2", "adjust_level", map[string]string{"delta": "2"}, false},
		{" set_months : months = 24 ", "set_months", map[string]string{"months": "24"}, false},
		{"switch_type:type=progressive", "switch_type", map[string]string{"type": "progressive"}, false},
		{"noop", "noop", map[string]string{}, false},
		{"", "", nil, true},
		{":delta=2", "", nil, true},
		{"adjust_level:delta", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			name, params, err := ParseTransformSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTransformSpec failed: %v", err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(params) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if params[k] != v {
					t.Errorf("params[%s] = %q, want %q", k, params[k], v)
				}
			}
		})
	}
}

func TestTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()

	names := registry.List()
	want := []string{"adjust_level", "adjust_months", "delay_start", "set_level", "set_months", "set_retirement_age", "switch_type"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	tr, err := registry.CreateFromSpec("set_level:level=12.5")
	if err != nil {
		t.Fatalf("CreateFromSpec failed: %v", err)
	}
	sl, ok := tr.(*SetLevel)
	if !ok || !sl.Level.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("unexpected transform %#v", tr)
	}

	tr, err = registry.CreateFromSpec("switch_type:type=progressive")
	if err != nil {
		t.Fatalf("CreateFromSpec failed: %v", err)
	}
	if st := tr.(*SwitchType); st.Type != domain.StrategyProgressive {
		t.Errorf("Type = %s", st.Type)
	}

	errorCases := []string{
		"unknown:x=1",
		"adjust_level",
		"delay_start:months=six",
		"set_level:level=abc",
		"switch_type:type=weekly",
	}
	for _, spec := range errorCases {
		if _, err := registry.CreateFromSpec(spec); err == nil {
			t.Errorf("Expected error for %q", spec)
		}
	}
}
