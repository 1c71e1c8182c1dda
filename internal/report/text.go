package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/nao1215/workstat/internal/model"
)

// moneyPrinter renders numbers with English locale grouping ("53,333").
// Salary figures use grouped thousands with no fraction digits.
var moneyPrinter = message.NewPrinter(language.English)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display and matches the classic
// employee analysis layout: a summary statistics block followed by
// per-department salary and age sections.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and is easy to pipe to
// files or other tools.
type TextWriter struct {
	baseWriter

	// currency is the symbol prepended to salary figures.
	currency string
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithCurrency sets the currency symbol used for salary figures.
// The default is "$".
func WithCurrency(symbol string) TextWriterOption {
	return func(w *TextWriter) {
		if symbol != "" {
			w.currency = symbol
		}
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		currency:   "$",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the summary as a text report.
func (w *TextWriter) Write(summary *model.Summary) (int, error) {
	s, err := w.Render(summary)
	if err != nil {
		return 0, err
	}
	return w.output.Write([]byte(s))
}

// Render returns the text report as a single string.
// It is split out from Write so that callers can obtain the report without
// an io.Writer round trip.
func (w *TextWriter) Render(summary *model.Summary) (string, error) {
	if summary == nil {
		return "", ErrNilSummary
	}

	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeSummaryStatistics(&sb, summary)
	w.writeDistincts(&sb, summary)
	w.writeSalaryByDept(&sb, summary)
	w.writeAgeByDept(&sb, summary)

	return sb.String(), nil
}

// writeHeader writes the report title block.
// The title is underlined with exactly as many "=" as it has characters.
func (w *TextWriter) writeHeader(sb *strings.Builder) {
	const title = "EMPLOYEE ANALYSIS REPORT"
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
	sb.WriteString("\n\n")
}

// writeSummaryStatistics writes the headcount and average block.
func (w *TextWriter) writeSummaryStatistics(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("Summary Statistics:\n")
	sb.WriteString(fmt.Sprintf("- Total Employees: %d\n", summary.TotalEmployees))
	sb.WriteString(fmt.Sprintf("- Average Age: %.1f years\n", summary.AverageAge))
	sb.WriteString(fmt.Sprintf("- Average Salary: %s\n", w.money(summary.AverageSalary)))
	sb.WriteString("\n")
}

// writeDistincts writes the department and city listings.
func (w *TextWriter) writeDistincts(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(fmt.Sprintf("Departments: %s\n", strings.Join(summary.Departments, ", ")))
	sb.WriteString(fmt.Sprintf("Cities: %s\n", strings.Join(summary.Cities, ", ")))
	sb.WriteString("\n")
}

// writeSalaryByDept writes the per-department salary section
// in the summary's mapping order.
func (w *TextWriter) writeSalaryByDept(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("Salary by Department:\n")
	for _, e := range summary.SalaryByDept {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", e.Department, w.money(e.Value)))
	}
}

// writeAgeByDept writes the per-department age section
// in the summary's mapping order.
func (w *TextWriter) writeAgeByDept(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("\nAge by Department:\n")
	for _, e := range summary.AgeByDept {
		sb.WriteString(fmt.Sprintf("- %s: %.1f years\n", e.Department, e.Value))
	}
}

// money formats a salary figure with the writer's currency symbol.
func (w *TextWriter) money(v float64) string {
	return formatMoney(w.currency, v)
}

// formatMoney formats a salary figure with thousands separators and no
// fraction digits, e.g. 53333.33 -> "$53,333".
func formatMoney(symbol string, v float64) string {
	return symbol + moneyPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}
