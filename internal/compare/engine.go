package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/transform"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.NewTemplateRegistry(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // Template names, each producing one alternative
	Transforms []string // Transform specs, each producing one alternative
}

// Compare projects the base plan and one alternative per template and per
// transform spec, in that order.
func (ce *CompareEngine) Compare(ctx context.Context, base *transform.Plan, options CompareOptions) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, domain.NewValidationError("templates", "at least one template or transform is required")
	}

	base = base.DeepCopy()
	base.Tables = ce.CalcEngine.Tables

	baseResult, err := ce.project(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}

	alternatives := make([]ComparisonResult, 0, len(options.Templates)+len(options.Transforms))

	for _, name := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, domain.NewValidationError("templates", "template %s not found", name)
		}

		plan, err := ce.TemplateRegistry.ApplyTemplate(base, name)
		if err != nil {
			return nil, domain.NewValidationError("templates", "%v", err)
		}

		alt, err := ce.project(plan)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", name, err)
		}
		alt.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := ce.TransformRegistry.CreateFromSpec(spec)
		if err != nil {
			return nil, domain.NewValidationError("transforms", "%v", err)
		}

		plan, err := transform.ApplyTransforms(base, []transform.PlanTransform{t})
		if err != nil {
			return nil, domain.NewValidationError("transforms", "%v", err)
		}
		plan.Name = spec

		alt, err := ce.project(plan)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", spec, err)
		}
		alt.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	baseResult.Description = base.String()
	compSet := &ComparisonSet{
		BaseName:           base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) project(plan *transform.Plan) (ComparisonResult, error) {
	strategy, err := plan.Strategy(ce.CalcEngine.Tables)
	if err != nil {
		return ComparisonResult{}, err
	}
	result, err := ce.CalcEngine.ComputeSingleStrategy(calculation.ProjectionParams{
		Profile:  plan.Profile,
		Strategy: strategy,
	})
	if err != nil {
		return ComparisonResult{}, err
	}
	result.StrategyType = plan.Type
	result.WageLevel = int(plan.WageLevel.IntPart())
	return ce.MetricsCalculator.CalculateMetrics(plan, result), nil
}
