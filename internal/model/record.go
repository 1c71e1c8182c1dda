package model

// Required column names for an employee dataset.
// Every dataset analyzed by workstat must provide these four columns.
// The loader package can remap arbitrary source headers onto these names
// via per-dataset configuration.
const (
	// ColumnAge is the employee age column.
	ColumnAge = "age"

	// ColumnSalary is the employee salary column.
	ColumnSalary = "salary"

	// ColumnDepartment is the employee department column.
	ColumnDepartment = "department"

	// ColumnCity is the employee city column.
	ColumnCity = "city"
)

// RequiredColumns lists the columns every employee dataset must contain,
// in canonical order.
func RequiredColumns() []string {
	return []string{ColumnAge, ColumnSalary, ColumnDepartment, ColumnCity}
}

// Record represents a single employee row.
//
// Design decision: We keep Record as a plain value type with exported fields
// rather than an opaque struct with accessors. Records are passed around as
// immutable values and never carry behavior of their own.
type Record struct {
	// Age is the employee's age in years.
	Age int `json:"age"`

	// Salary is the employee's annual salary.
	Salary float64 `json:"salary"`

	// Department is the employee's department name.
	Department string `json:"department"`

	// City is the city the employee works in.
	City string `json:"city"`
}
