package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformFactory creates a transform from string parameters
type TransformFactory func(params map[string]string) (PlanTransform, error)

// TransformRegistry maps transform names to factories
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// NewTransformRegistry creates a registry holding every built-in transform
func NewTransformRegistry() *TransformRegistry {
	tr := &TransformRegistry{factories: make(map[string]TransformFactory)}

	tr.Register("switch_type", func(params map[string]string) (PlanTransform, error) {
		typ, err := domain.ParseStrategyType(params["type"])
		if err != nil {
			return nil, err
		}
		return &SwitchType{Type: typ}, nil
	})
	tr.Register("adjust_level", func(params map[string]string) (PlanTransform, error) {
		delta, err := decimalParam(params, "delta")
		if err != nil {
			return nil, err
		}
		return &AdjustLevel{Delta: delta}, nil
	})
	tr.Register("set_level", func(params map[string]string) (PlanTransform, error) {
		level, err := decimalParam(params, "level")
		if err != nil {
			return nil, err
		}
		return &SetLevel{Level: level}, nil
	})
	tr.Register("delay_start", func(params map[string]string) (PlanTransform, error) {
		months, err := intParam(params, "months")
		if err != nil {
			return nil, err
		}
		return &DelayStart{Months: months}, nil
	})
	tr.Register("adjust_months", func(params map[string]string) (PlanTransform, error) {
		delta, err := intParam(params, "delta")
		if err != nil {
			return nil, err
		}
		return &AdjustMonths{Delta: delta}, nil
	})
	tr.Register("set_months", func(params map[string]string) (PlanTransform, error) {
		months, err := intParam(params, "months")
		if err != nil {
			return nil, err
		}
		return &SetMonths{Months: months}, nil
	})
	tr.Register("set_retirement_age", func(params map[string]string) (PlanTransform, error) {
		age, err := intParam(params, "age")
		if err != nil {
			return nil, err
		}
		return &SetRetirementAge{Age: age}, nil
	})

	return tr
}

// Register adds or replaces a factory
func (tr *TransformRegistry) Register(name string, factory TransformFactory) {
	tr.factories[name] = factory
}

// Create builds the named transform
func (tr *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, ok := tr.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names, sorted
func (tr *TransformRegistry) List() []string {
	names := make([]string, 0, len(tr.factories))
	for name := range tr.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value" into a name and its
// parameters. A bare name has no parameters.
func ParseTransformSpec(spec string) (string, map[string]string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", nil, fmt.Errorf("empty transform spec")
	}

	name, rest, hasParams := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("transform spec %q has no name", spec)
	}

	params := make(map[string]string)
	if !hasParams {
		return name, params, nil
	}
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return "", nil, fmt.Errorf("invalid parameter %q in transform spec %q (want key=value)", pair, spec)
		}
		params[key] = strings.TrimSpace(value)
	}
	return name, params, nil
}

// CreateFromSpec parses and builds a transform in one step
func (tr *TransformRegistry) CreateFromSpec(spec string) (PlanTransform, error) {
	name, params, err := ParseTransformSpec(spec)
	if err != nil {
		return nil, err
	}
	return tr.Create(name, params)
}

func intParam(params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter: %s", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func decimalParam(params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("missing required parameter: %s", key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
