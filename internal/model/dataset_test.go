package model

import (
	"errors"
	"testing"
)

// TestNewDataset tests columnar dataset construction.
func TestNewDataset(t *testing.T) {
	t.Parallel()

	t.Run("builds dataset from matching columns", func(t *testing.T) {
		t.Parallel()

		ds, err := NewDataset("staff",
			NewNumberColumn(ColumnAge, []float64{30, 40}),
			NewTextColumn(ColumnCity, []string{"NYC", "LA"}),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Len() != 2 {
			t.Errorf("Len() = %d, want 2", ds.Len())
		}
		if ds.Name() != "staff" {
			t.Errorf("Name() = %q, want %q", ds.Name(), "staff")
		}
	})

	t.Run("rejects ragged columns", func(t *testing.T) {
		t.Parallel()

		_, err := NewDataset("staff",
			NewNumberColumn(ColumnAge, []float64{30, 40}),
			NewTextColumn(ColumnCity, []string{"NYC"}),
		)
		if !errors.Is(err, ErrRaggedColumns) {
			t.Errorf("expected ErrRaggedColumns, got %v", err)
		}
	})

	t.Run("rejects duplicate column names", func(t *testing.T) {
		t.Parallel()

		_, err := NewDataset("staff",
			NewTextColumn(ColumnCity, []string{"NYC"}),
			NewTextColumn(ColumnCity, []string{"LA"}),
		)
		if err == nil {
			t.Error("expected error for duplicate column, got nil")
		}
	})
}

// TestDatasetColumnAccess tests typed column lookup.
func TestDatasetColumnAccess(t *testing.T) {
	t.Parallel()

	ds := FromRecords("staff", []Record{
		{Age: 30, Salary: 50000, Department: "Eng", City: "NYC"},
		{Age: 40, Salary: 70000, Department: "Eng", City: "LA"},
	})

	t.Run("returns numeric column values", func(t *testing.T) {
		t.Parallel()

		ages, err := ds.NumberColumn(ColumnAge)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ages) != 2 || ages[0] != 30 || ages[1] != 40 {
			t.Errorf("unexpected age values: %v", ages)
		}
	})

	t.Run("returns text column values", func(t *testing.T) {
		t.Parallel()

		cities, err := ds.TextColumn(ColumnCity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cities) != 2 || cities[0] != "NYC" {
			t.Errorf("unexpected city values: %v", cities)
		}
	})

	t.Run("reports missing column", func(t *testing.T) {
		t.Parallel()

		_, err := ds.NumberColumn("bonus")
		if !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("expected ErrColumnNotFound, got %v", err)
		}
	})

	t.Run("reports wrong column type", func(t *testing.T) {
		t.Parallel()

		_, err := ds.NumberColumn(ColumnCity)
		if !errors.Is(err, ErrColumnType) {
			t.Errorf("expected ErrColumnType, got %v", err)
		}
		_, err = ds.TextColumn(ColumnSalary)
		if !errors.Is(err, ErrColumnType) {
			t.Errorf("expected ErrColumnType, got %v", err)
		}
	})
}

// TestDatasetRecords tests row-oriented materialization.
func TestDatasetRecords(t *testing.T) {
	t.Parallel()

	t.Run("round-trips records", func(t *testing.T) {
		t.Parallel()

		want := []Record{
			{Age: 30, Salary: 50000, Department: "Eng", City: "NYC"},
			{Age: 25, Salary: 40000, Department: "Sales", City: "NYC"},
		}
		ds := FromRecords("staff", want)

		got, err := ds.Records()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("got %d records, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("fails when a canonical column is absent", func(t *testing.T) {
		t.Parallel()

		ds, err := NewDataset("staff",
			NewNumberColumn(ColumnAge, []float64{30}),
			NewTextColumn(ColumnCity, []string{"NYC"}),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := ds.Records(); !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("expected ErrColumnNotFound, got %v", err)
		}
	})
}
