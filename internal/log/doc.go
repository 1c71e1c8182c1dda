// Package log provides privacy-aware logging functionality with automatic
// masking of personal employee data, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of personal values (salaries, names, contact data)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// Employee datasets contain compensation and personal information that must
// not leak into logs that may be shared or attached to bug reports. The
// MaskHandler automatically masks attribute values whose keys indicate such
// data (salary, name, email, phone, birth date), even in verbose mode.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("loaded record",
//	    "salary", 72000,          // Will be masked
//	    "department", "Eng",      // Left as-is
//	)
//
//	slog.SetDefault(logger)
package log
