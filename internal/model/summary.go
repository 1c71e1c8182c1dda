package model

import "time"

// DeptAverage is one entry of an ordered department-to-average mapping.
type DeptAverage struct {
	// Department is the department name.
	Department string `json:"department"`

	// Value is the average for that department.
	Value float64 `json:"value"`
}

// DeptAverages is an ordered mapping from department to an average value.
//
// Design decision: We use an explicit ordered key-value list rather than a
// Go map because the report must iterate departments in the order they first
// appear in the source data, and Go map iteration order is deliberately
// randomized.
type DeptAverages []DeptAverage

// Get returns the average for the given department and whether it exists.
func (d DeptAverages) Get(department string) (float64, bool) {
	for _, e := range d {
		if e.Department == department {
			return e.Value, true
		}
	}
	return 0, false
}

// Departments returns the department names in mapping order.
func (d DeptAverages) Departments() []string {
	names := make([]string, len(d))
	for i, e := range d {
		names[i] = e.Department
	}
	return names
}

// Summary holds the aggregated statistics of one employee dataset.
// It is created once per analysis and never modified afterwards; the report
// writers and the history database only read it.
type Summary struct {
	// Dataset is the name of the analyzed dataset.
	Dataset string `json:"dataset,omitempty"`

	// GeneratedAt is when the analysis was performed.
	GeneratedAt time.Time `json:"generated_at"`

	// TotalEmployees is the number of rows in the dataset.
	TotalEmployees int `json:"total_employees"`

	// AverageAge is the arithmetic mean of the age column.
	AverageAge float64 `json:"average_age"`

	// AverageSalary is the arithmetic mean of the salary column.
	AverageSalary float64 `json:"average_salary"`

	// Departments lists the distinct departments in first-seen order.
	Departments []string `json:"departments"`

	// Cities lists the distinct cities in first-seen order.
	Cities []string `json:"cities"`

	// SalaryByDept maps each department to its average salary,
	// in first-seen department order.
	SalaryByDept DeptAverages `json:"salary_by_dept"`

	// AgeByDept maps each department to its average age,
	// in first-seen department order.
	AgeByDept DeptAverages `json:"age_by_dept"`
}
