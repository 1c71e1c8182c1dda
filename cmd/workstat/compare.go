package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/workstat/internal/config"
	"github.com/nao1215/workstat/internal/database"
	"github.com/nao1215/workstat/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares analysis results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [dataset-name]",
		Short: "Compare analysis results with historical data",
		Long: `Compare displays differences between the two most recent analysis runs.

This command retrieves historical analysis data from the database and shows:
- Headcount changes since the previous run
- Average age and salary deltas
- Departments and cities that appeared or disappeared

The comparison requires at least two runs in the database for the specified
dataset. Use 'workstat analyze' to run analyses and save results.

Examples:
  # Compare latest two runs for a dataset
  workstat compare employees

  # List all run history for a dataset
  workstat compare --list employees

  # Compare with a specific historical run by ID
  workstat compare --with-run-id 5 employees

  # Compare with the first run after a specific date
  workstat compare --since "2026-01-01" employees

  # Output comparison in JSON format
  workstat compare --json employees

  # List all datasets in the database
  workstat compare --list-datasets`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified dataset")
	cmd.Flags().BoolP("list-datasets", "L", false,
		"List all datasets in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listDatasets, err := cmd.Flags().GetBool("list-datasets")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-datasets)
	var dataset string
	if !listDatasets {
		if len(args) == 0 {
			return errors.New("dataset name is required (use --list-datasets to see available datasets)")
		}
		dataset = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Best-effort close on exit

	ctx := cmd.Context()

	if listDatasets {
		return listStoredDatasets(ctx, cmd.OutOrStdout(), db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, cmd.OutOrStdout(), db, dataset)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	base, target, err := comparisonRuns(ctx, cmd, db, dataset)
	if err != nil {
		return err
	}

	comparison := NewComparison(base, target)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(comparison)
	case markdownOutput:
		return writeComparisonMarkdown(out, comparison)
	default:
		return writeComparisonText(out, comparison)
	}
}

// comparisonRuns resolves the two runs to compare based on flags.
// The target is always the latest run; the base is the previous run,
// a specific run ID, or the first run since a date.
func comparisonRuns(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, dataset string) (base, target *database.Run, err error) {
	target, err = db.Latest(ctx, dataset)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			return nil, nil, fmt.Errorf("no runs found for dataset %q (run 'workstat analyze' first)", dataset)
		}
		return nil, nil, err
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return nil, nil, err
	}
	since, err := cmd.Flags().GetString("since")
	if err != nil {
		return nil, nil, err
	}

	switch {
	case withRunID > 0:
		base, err = db.RunByID(ctx, withRunID)
		if err != nil {
			return nil, nil, fmt.Errorf("run %d: %w", withRunID, err)
		}
		if base.Dataset != dataset {
			return nil, nil, fmt.Errorf("run %d belongs to dataset %q, not %q", withRunID, base.Dataset, dataset)
		}
	case since != "":
		sinceTime, perr := time.Parse("2006-01-02", since)
		if perr != nil {
			return nil, nil, fmt.Errorf("invalid --since date %q (want YYYY-MM-DD): %w", since, perr)
		}
		base, err = db.FirstSince(ctx, dataset, sinceTime)
		if err != nil {
			return nil, nil, fmt.Errorf("no runs for %q since %s: %w", dataset, since, err)
		}
	default:
		base, err = db.Previous(ctx, dataset, target.ID)
		if err != nil {
			if errors.Is(err, database.ErrRunNotFound) {
				return nil, nil, fmt.Errorf("dataset %q has only one run; need at least two to compare", dataset)
			}
			return nil, nil, err
		}
	}

	return base, target, nil
}

// Comparison describes how a dataset changed between two analysis runs.
type Comparison struct {
	// Dataset is the compared dataset name.
	Dataset string `json:"dataset"`

	// BaseRunID and TargetRunID identify the compared runs.
	BaseRunID   int64 `json:"base_run_id"`
	TargetRunID int64 `json:"target_run_id"`

	// BaseCreatedAt and TargetCreatedAt are the run timestamps.
	BaseCreatedAt   time.Time `json:"base_created_at"`
	TargetCreatedAt time.Time `json:"target_created_at"`

	// HeadcountDelta is the change in total employees.
	HeadcountDelta int `json:"headcount_delta"`

	// AverageAgeDelta is the change in average age.
	AverageAgeDelta float64 `json:"average_age_delta"`

	// AverageSalaryDelta is the change in average salary.
	AverageSalaryDelta float64 `json:"average_salary_delta"`

	// DepartmentsAdded and DepartmentsRemoved list departments present in
	// only one of the runs.
	DepartmentsAdded   []string `json:"departments_added,omitempty"`
	DepartmentsRemoved []string `json:"departments_removed,omitempty"`

	// CitiesAdded and CitiesRemoved list cities present in only one run.
	CitiesAdded   []string `json:"cities_added,omitempty"`
	CitiesRemoved []string `json:"cities_removed,omitempty"`

	// Base and Target carry the full summaries for detailed inspection.
	Base   *model.Summary `json:"base"`
	Target *model.Summary `json:"target"`
}

// NewComparison computes the differences between two runs.
// The base run is the older reference; the target is the newer run.
func NewComparison(base, target *database.Run) *Comparison {
	return &Comparison{
		Dataset:            target.Dataset,
		BaseRunID:          base.ID,
		TargetRunID:        target.ID,
		BaseCreatedAt:      base.CreatedAt,
		TargetCreatedAt:    target.CreatedAt,
		HeadcountDelta:     target.Summary.TotalEmployees - base.Summary.TotalEmployees,
		AverageAgeDelta:    target.Summary.AverageAge - base.Summary.AverageAge,
		AverageSalaryDelta: target.Summary.AverageSalary - base.Summary.AverageSalary,
		DepartmentsAdded:   missingFrom(target.Summary.Departments, base.Summary.Departments),
		DepartmentsRemoved: missingFrom(base.Summary.Departments, target.Summary.Departments),
		CitiesAdded:        missingFrom(target.Summary.Cities, base.Summary.Cities),
		CitiesRemoved:      missingFrom(base.Summary.Cities, target.Summary.Cities),
		Base:               base.Summary,
		Target:             target.Summary,
	}
}

// missingFrom returns the values present in a but not in b,
// preserving a's order.
func missingFrom(a, b []string) []string {
	present := make(map[string]struct{}, len(b))
	for _, v := range b {
		present[v] = struct{}{}
	}

	var out []string
	for _, v := range a {
		if _, ok := present[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// formatDelta renders a signed delta with an explicit plus for increases.
func formatDelta(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

// writeComparisonText renders the comparison in human-readable form.
func writeComparisonText(out io.Writer, c *Comparison) error {
	var sb strings.Builder

	sb.WriteString("\nDATASET COMPARISON: " + c.Dataset + "\n")
	sb.WriteString(strings.Repeat("=", len("DATASET COMPARISON: ")+len(c.Dataset)) + "\n\n")

	sb.WriteString(fmt.Sprintf("Base run:   #%d (%s)\n", c.BaseRunID, c.BaseCreatedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Target run: #%d (%s)\n\n", c.TargetRunID, c.TargetCreatedAt.Format("2006-01-02 15:04:05 MST")))

	sb.WriteString("Changes:\n")
	sb.WriteString(fmt.Sprintf("- Total Employees: %d -> %d (%s)\n",
		c.Base.TotalEmployees, c.Target.TotalEmployees, formatDelta(float64(c.HeadcountDelta), 0)))
	sb.WriteString(fmt.Sprintf("- Average Age: %.1f -> %.1f (%s years)\n",
		c.Base.AverageAge, c.Target.AverageAge, formatDelta(c.AverageAgeDelta, 1)))
	sb.WriteString(fmt.Sprintf("- Average Salary: %.0f -> %.0f (%s)\n",
		c.Base.AverageSalary, c.Target.AverageSalary, formatDelta(c.AverageSalaryDelta, 0)))
	sb.WriteString("\n")

	writeMembershipChanges(&sb, "Departments", c.DepartmentsAdded, c.DepartmentsRemoved)
	writeMembershipChanges(&sb, "Cities", c.CitiesAdded, c.CitiesRemoved)

	_, err := io.WriteString(out, sb.String())
	return err
}

// writeMembershipChanges renders added/removed values for one category.
func writeMembershipChanges(sb *strings.Builder, label string, added, removed []string) {
	if len(added) == 0 && len(removed) == 0 {
		sb.WriteString(label + ": unchanged\n")
		return
	}
	if len(added) > 0 {
		sb.WriteString(fmt.Sprintf("%s added: %s\n", label, strings.Join(added, ", ")))
	}
	if len(removed) > 0 {
		sb.WriteString(fmt.Sprintf("%s removed: %s\n", label, strings.Join(removed, ", ")))
	}
}

// writeComparisonMarkdown renders the comparison as Markdown.
func writeComparisonMarkdown(out io.Writer, c *Comparison) error {
	md := markdown.NewMarkdown(out)

	md.H1("Dataset Comparison: " + c.Dataset)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Base", "Target", "Delta"},
		Rows: [][]string{
			{"Total Employees",
				strconv.Itoa(c.Base.TotalEmployees),
				strconv.Itoa(c.Target.TotalEmployees),
				formatDelta(float64(c.HeadcountDelta), 0)},
			{"Average Age",
				fmt.Sprintf("%.1f", c.Base.AverageAge),
				fmt.Sprintf("%.1f", c.Target.AverageAge),
				formatDelta(c.AverageAgeDelta, 1)},
			{"Average Salary",
				fmt.Sprintf("%.0f", c.Base.AverageSalary),
				fmt.Sprintf("%.0f", c.Target.AverageSalary),
				formatDelta(c.AverageSalaryDelta, 0)},
		},
	})

	if len(c.DepartmentsAdded) > 0 {
		md.H2("Departments Added")
		md.BulletList(c.DepartmentsAdded...)
	}
	if len(c.DepartmentsRemoved) > 0 {
		md.H2("Departments Removed")
		md.BulletList(c.DepartmentsRemoved...)
	}

	return md.Build()
}

// listStoredDatasets prints all dataset names in the database.
func listStoredDatasets(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	names, err := db.ListDatasets(ctx)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		_, err := fmt.Fprintln(out, "No datasets in the database (run 'workstat analyze' first)")
		return err
	}

	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}

// listRunHistory prints the stored runs for a dataset, newest first.
func listRunHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, dataset string) error {
	runs, err := db.History(ctx, dataset, 0)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintf(out, "No runs found for dataset %q\n", dataset)
		return err
	}

	for _, run := range runs {
		if _, err := fmt.Fprintf(out, "#%d  %s  employees=%d  avg_salary=%.0f\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Summary.TotalEmployees,
			run.Summary.AverageSalary,
		); err != nil {
			return err
		}
	}
	return nil
}
