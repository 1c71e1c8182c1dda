package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/workstat/internal/analyze"
	"github.com/nao1215/workstat/internal/model"
)

// SchemaStep validates the dataset shape before any statistics run.
// It checks that the dataset is non-empty and that the four canonical
// columns exist with the expected kinds.
//
// Design decision: Validation is a separate step rather than a check
// inside each statistic step so that a malformed dataset fails once,
// with one clear error, before any computation starts.
type SchemaStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// SchemaStepOption configures a SchemaStep.
type SchemaStepOption func(*SchemaStep)

// WithSchemaLogger sets a custom logger for the schema step.
func WithSchemaLogger(logger *slog.Logger) SchemaStepOption {
	return func(s *SchemaStep) {
		s.logger = logger
	}
}

// NewSchemaStep creates a new schema validation step.
func NewSchemaStep(opts ...SchemaStepOption) *SchemaStep {
	s := &SchemaStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SchemaStep) Name() string {
	return "schema"
}

// Do validates the dataset shape.
func (s *SchemaStep) Do(_ context.Context, analysis *model.Analysis) error {
	ds := analysis.Dataset
	if ds == nil {
		return analyze.ErrNilDataset
	}
	if ds.Len() == 0 {
		return fmt.Errorf("dataset %q: %w", ds.Name(), analyze.ErrEmptyDataset)
	}

	if _, err := ds.NumberColumn(model.ColumnAge); err != nil {
		return err
	}
	if _, err := ds.NumberColumn(model.ColumnSalary); err != nil {
		return err
	}
	if _, err := ds.TextColumn(model.ColumnDepartment); err != nil {
		return err
	}
	if _, err := ds.TextColumn(model.ColumnCity); err != nil {
		return err
	}

	s.logger.Debug("dataset schema valid",
		"dataset", ds.Name(),
		"rows", ds.Len(),
		"columns", ds.ColumnNames(),
	)

	return nil
}

// TotalsStep computes the headcount and the overall averages.
type TotalsStep struct{}

// NewTotalsStep creates a new totals step.
func NewTotalsStep() *TotalsStep {
	return &TotalsStep{}
}

// Name returns the step name.
func (s *TotalsStep) Name() string {
	return "totals"
}

// Do computes total employees, average age, and average salary.
func (s *TotalsStep) Do(_ context.Context, analysis *model.Analysis) error {
	ds := analysis.Dataset

	ages, err := ds.NumberColumn(model.ColumnAge)
	if err != nil {
		return err
	}
	salaries, err := ds.NumberColumn(model.ColumnSalary)
	if err != nil {
		return err
	}

	averageAge, err := analyze.Mean(ages)
	if err != nil {
		return err
	}
	averageSalary, err := analyze.Mean(salaries)
	if err != nil {
		return err
	}

	analysis.Summary.TotalEmployees = ds.Len()
	analysis.Summary.AverageAge = averageAge
	analysis.Summary.AverageSalary = averageSalary
	return nil
}

// DistinctStep collects the distinct departments and cities
// in first-seen order.
type DistinctStep struct{}

// NewDistinctStep creates a new distinct-values step.
func NewDistinctStep() *DistinctStep {
	return &DistinctStep{}
}

// Name returns the step name.
func (s *DistinctStep) Name() string {
	return "distinct_values"
}

// Do collects the distinct department and city values.
func (s *DistinctStep) Do(_ context.Context, analysis *model.Analysis) error {
	ds := analysis.Dataset

	departments, err := ds.TextColumn(model.ColumnDepartment)
	if err != nil {
		return err
	}
	cities, err := ds.TextColumn(model.ColumnCity)
	if err != nil {
		return err
	}

	analysis.Summary.Departments = analyze.Distinct(departments)
	analysis.Summary.Cities = analyze.Distinct(cities)
	return nil
}

// GroupByStep computes the per-department salary and age averages.
type GroupByStep struct{}

// NewGroupByStep creates a new per-department grouping step.
func NewGroupByStep() *GroupByStep {
	return &GroupByStep{}
}

// Name returns the step name.
func (s *GroupByStep) Name() string {
	return "group_by"
}

// Do computes the ordered department-to-average mappings.
func (s *GroupByStep) Do(_ context.Context, analysis *model.Analysis) error {
	ds := analysis.Dataset

	departments, err := ds.TextColumn(model.ColumnDepartment)
	if err != nil {
		return err
	}
	salaries, err := ds.NumberColumn(model.ColumnSalary)
	if err != nil {
		return err
	}
	ages, err := ds.NumberColumn(model.ColumnAge)
	if err != nil {
		return err
	}

	salaryByDept, err := analyze.GroupedMeans(departments, salaries)
	if err != nil {
		return err
	}
	ageByDept, err := analyze.GroupedMeans(departments, ages)
	if err != nil {
		return err
	}

	analysis.Summary.SalaryByDept = salaryByDept
	analysis.Summary.AgeByDept = ageByDept
	return nil
}
