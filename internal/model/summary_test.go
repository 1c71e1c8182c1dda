package model

import "testing"

// TestDeptAverages tests the ordered department mapping.
func TestDeptAverages(t *testing.T) {
	t.Parallel()

	averages := DeptAverages{
		{Department: "Eng", Value: 60000},
		{Department: "Sales", Value: 40000},
	}

	t.Run("returns value for known department", func(t *testing.T) {
		t.Parallel()

		v, ok := averages.Get("Sales")
		if !ok {
			t.Fatal("expected Sales to be present")
		}
		if v != 40000 {
			t.Errorf("Get(Sales) = %v, want 40000", v)
		}
	})

	t.Run("reports unknown department", func(t *testing.T) {
		t.Parallel()

		if _, ok := averages.Get("HR"); ok {
			t.Error("expected HR to be absent")
		}
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		got := averages.Departments()
		want := []string{"Eng", "Sales"}
		if len(got) != len(want) {
			t.Fatalf("got %d departments, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("department %d = %q, want %q", i, got[i], want[i])
			}
		}
	})
}
