package analyze

import (
	"fmt"
	"time"

	"github.com/nao1215/workstat/internal/model"
)

// meanAccumulator computes an arithmetic mean as a running sum and count.
// Splitting the mean into its two moments keeps the group-by code able to
// share one accumulator per department for any value column.
type meanAccumulator struct {
	sum   float64
	count int
}

// add folds one value into the accumulator.
func (a *meanAccumulator) add(v float64) {
	a.sum += v
	a.count++
}

// mean returns the arithmetic mean of the accumulated values.
// The caller guarantees count > 0.
func (a *meanAccumulator) mean() float64 {
	return a.sum / float64(a.count)
}

// Mean returns the arithmetic mean of values.
// It returns ErrEmptyDataset for an empty slice.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDataset
	}
	var acc meanAccumulator
	for _, v := range values {
		acc.add(v)
	}
	return acc.mean(), nil
}

// Distinct returns the distinct values of a text column in first-seen order.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// GroupedMeans computes the mean of values grouped by the parallel keys
// column. The result preserves the first-seen order of the keys.
// The two slices must have the same length.
func GroupedMeans(keys []string, values []float64) (model.DeptAverages, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("got %d keys for %d values: %w",
			len(keys), len(values), model.ErrRaggedColumns)
	}

	order := make([]string, 0)
	groups := make(map[string]*meanAccumulator)
	for i, key := range keys {
		acc, ok := groups[key]
		if !ok {
			acc = &meanAccumulator{}
			groups[key] = acc
			order = append(order, key)
		}
		acc.add(values[i])
	}

	out := make(model.DeptAverages, len(order))
	for i, key := range order {
		out[i] = model.DeptAverage{Department: key, Value: groups[key].mean()}
	}
	return out, nil
}

// Analyze computes the full summary for an employee dataset.
//
// The dataset must contain the four canonical columns (age, salary,
// department, city); a missing column is reported via
// model.ErrColumnNotFound. A dataset with zero rows is rejected with
// ErrEmptyDataset.
//
// Analyze is a pure function of its input: it never mutates the dataset
// and returns a freshly allocated Summary on every call.
func Analyze(ds *model.Dataset) (*model.Summary, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("dataset %q: %w", ds.Name(), ErrEmptyDataset)
	}

	ages, err := ds.NumberColumn(model.ColumnAge)
	if err != nil {
		return nil, err
	}
	salaries, err := ds.NumberColumn(model.ColumnSalary)
	if err != nil {
		return nil, err
	}
	departments, err := ds.TextColumn(model.ColumnDepartment)
	if err != nil {
		return nil, err
	}
	cities, err := ds.TextColumn(model.ColumnCity)
	if err != nil {
		return nil, err
	}

	averageAge, err := Mean(ages)
	if err != nil {
		return nil, err
	}
	averageSalary, err := Mean(salaries)
	if err != nil {
		return nil, err
	}
	salaryByDept, err := GroupedMeans(departments, salaries)
	if err != nil {
		return nil, err
	}
	ageByDept, err := GroupedMeans(departments, ages)
	if err != nil {
		return nil, err
	}

	return &model.Summary{
		Dataset:        ds.Name(),
		GeneratedAt:    time.Now().UTC(),
		TotalEmployees: ds.Len(),
		AverageAge:     averageAge,
		AverageSalary:  averageSalary,
		Departments:    Distinct(departments),
		Cities:         Distinct(cities),
		SalaryByDept:   salaryByDept,
		AgeByDept:      ageByDept,
	}, nil
}
