package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// personalKeys contains attribute keys that should always be masked.
// These keys commonly carry personal employee data that should not be logged.
var personalKeys = map[string]bool{
	// Compensation
	"salary":       true,
	"pay":          true,
	"compensation": true,
	"bonus":        true,
	"wage":         true,

	// Identity
	"name":       true,
	"first_name": true,
	"last_name":  true,
	"full_name":  true,
	"employee":   true,

	// Contact
	"email":   true,
	"phone":   true,
	"address": true,

	// Government identifiers
	"ssn":         true,
	"national_id": true,
	"tax_id":      true,

	// Dates tied to an individual
	"birthdate":     true,
	"date_of_birth": true,
	"dob":           true,
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***MASKED***"

// MaskHandler wraps an slog.Handler to mask personal employee data.
// It intercepts log records and masks attribute values whose keys match
// personal-data key names before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Masking applies uniformly, including in verbose mode
type MaskHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewMaskHandler creates a new MaskHandler wrapping the given handler.
// All log attributes will be masked before being passed to the underlying
// handler. If handler is nil, the returned MaskHandler will use
// slog.Default().Handler().
func NewMaskHandler(handler slog.Handler) *MaskHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *MaskHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *MaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskHandler) WithGroup(name string) slog.Handler {
	return &MaskHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *MaskHandler) maskAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if isPersonalKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// isPersonalKey checks if the key indicates personal employee data.
// Aggregate keys ("average_salary", "salary_by_dept") are not masked:
// aggregated figures are the product of this tool, not personal records.
func isPersonalKey(key string) bool {
	keyLower := strings.ToLower(key)
	if strings.HasPrefix(keyLower, "average_") || strings.Contains(keyLower, "_by_") {
		return false
	}
	return personalKeys[keyLower]
}

// NewLogger creates a new slog.Logger with personal-data masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewMaskHandler(textHandler))
}
