package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/workstat/internal/model"
)

// MarkdownWriter outputs summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the summary as Markdown.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	if summary == nil {
		return 0, ErrNilSummary
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeDistincts(md, summary)
	w.writeByDepartment(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the summary statistics table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("Employee Analysis Report")
	md.PlainText("")

	if summary.Dataset != "" {
		md.PlainTextf("Dataset: `%s`", summary.Dataset)
		md.PlainText("")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Total Employees", strconv.Itoa(summary.TotalEmployees)},
			{"Average Age", fmt.Sprintf("%.1f years", summary.AverageAge)},
			{"Average Salary", markdownMoney(summary.AverageSalary)},
		},
	})
	md.PlainText("")
}

// writeDistincts writes the department and city listings.
func (w *MarkdownWriter) writeDistincts(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Departments")
	md.PlainText(strings.Join(summary.Departments, ", "))
	md.PlainText("")

	md.H2("Cities")
	md.PlainText(strings.Join(summary.Cities, ", "))
	md.PlainText("")
}

// writeByDepartment writes the per-department averages table,
// in the summary's mapping order.
func (w *MarkdownWriter) writeByDepartment(md *markdown.Markdown, summary *model.Summary) {
	md.H2("By Department")

	rows := make([][]string, 0, len(summary.SalaryByDept))
	for _, e := range summary.SalaryByDept {
		age, _ := summary.AgeByDept.Get(e.Department)
		rows = append(rows, []string{
			e.Department,
			markdownMoney(e.Value),
			fmt.Sprintf("%.1f years", age),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Department", "Average Salary", "Average Age"},
		Rows:   rows,
	})
}

// markdownMoney formats a salary figure the same way the text report does.
func markdownMoney(v float64) string {
	return formatMoney("$", v)
}
