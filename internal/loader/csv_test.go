package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/workstat/internal/model"
)

const sampleCSV = `age,salary,department,city
30,50000,Eng,NYC
40,70000,Eng,LA
25,40000,Sales,NYC
`

// TestLoadCSV tests CSV dataset loading.
func TestLoadCSV(t *testing.T) {
	t.Parallel()

	t.Run("loads dataset with canonical columns", func(t *testing.T) {
		t.Parallel()

		ds, err := New().LoadCSV("staff", strings.NewReader(sampleCSV))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if ds.Len() != 3 {
			t.Errorf("Len() = %d, want 3", ds.Len())
		}

		salaries, err := ds.NumberColumn(model.ColumnSalary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if salaries[1] != 70000 {
			t.Errorf("salary[1] = %v, want 70000", salaries[1])
		}

		departments, err := ds.TextColumn(model.ColumnDepartment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if departments[2] != "Sales" {
			t.Errorf("department[2] = %q, want Sales", departments[2])
		}
	})

	t.Run("lowercases headers", func(t *testing.T) {
		t.Parallel()

		csv := "Age,Salary,Department,City\n30,50000,Eng,NYC\n"
		ds, err := New().LoadCSV("staff", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ds.HasColumn(model.ColumnAge) {
			t.Error("expected Age header to map to canonical age column")
		}
	})

	t.Run("applies column mapping", func(t *testing.T) {
		t.Parallel()

		csv := "years,annual_pay,team,location\n30,50000,Eng,NYC\n"
		l := New(WithColumnMapping(map[string]string{
			"years":      model.ColumnAge,
			"annual_pay": model.ColumnSalary,
			"team":       model.ColumnDepartment,
			"location":   model.ColumnCity,
		}))

		ds, err := l.LoadCSV("staff", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, col := range model.RequiredColumns() {
			if !ds.HasColumn(col) {
				t.Errorf("expected canonical column %q after mapping", col)
			}
		}
	})

	t.Run("supports custom delimiter", func(t *testing.T) {
		t.Parallel()

		csv := "age;salary;department;city\n30;50000;Eng;NYC\n"
		ds, err := New(WithDelimiter(';')).LoadCSV("staff", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 1 {
			t.Errorf("Len() = %d, want 1", ds.Len())
		}
	})

	t.Run("keeps extra columns as text", func(t *testing.T) {
		t.Parallel()

		csv := "age,salary,department,city,title\n30,50000,Eng,NYC,SRE\n"
		ds, err := New().LoadCSV("staff", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		titles, err := ds.TextColumn("title")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if titles[0] != "SRE" {
			t.Errorf("title[0] = %q, want SRE", titles[0])
		}
	})

	t.Run("rejects empty file", func(t *testing.T) {
		t.Parallel()

		if _, err := New().LoadCSV("staff", strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
			t.Errorf("expected ErrNoHeader, got %v", err)
		}
	})

	t.Run("reports bad numeric cell with row and column", func(t *testing.T) {
		t.Parallel()

		csv := "age,salary,department,city\n30,50000,Eng,NYC\nforty,70000,Eng,LA\n"
		_, err := New().LoadCSV("staff", strings.NewReader(csv))
		if !errors.Is(err, ErrBadNumber) {
			t.Fatalf("expected ErrBadNumber, got %v", err)
		}
		if !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), `"age"`) {
			t.Errorf("expected row and column context in error, got %q", err.Error())
		}
	})
}

// TestLoadJSON tests JSON dataset loading.
func TestLoadJSON(t *testing.T) {
	t.Parallel()

	t.Run("loads array of records", func(t *testing.T) {
		t.Parallel()

		src := `[
			{"age": 30, "salary": 50000, "department": "Eng", "city": "NYC"},
			{"age": 25, "salary": 40000, "department": "Sales", "city": "NYC"}
		]`
		ds, err := New().LoadJSON("staff", strings.NewReader(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 2 {
			t.Errorf("Len() = %d, want 2", ds.Len())
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		src := `[{"age": 30, "pay": 50000}]`
		if _, err := New().LoadJSON("staff", strings.NewReader(src)); err == nil {
			t.Error("expected error for unknown field, got nil")
		}
	})
}

// TestLoadFile tests extension-based loading.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("loads csv file and names dataset after it", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "employees.csv")
		if err := os.WriteFile(path, []byte(sampleCSV), 0600); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		ds, err := New().LoadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Name() != "employees" {
			t.Errorf("Name() = %q, want %q", ds.Name(), "employees")
		}
	})

	t.Run("rejects unknown extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "employees.xlsx")
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		if _, err := New().LoadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := New().LoadFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
			t.Error("expected error for missing file, got nil")
		}
	})
}
