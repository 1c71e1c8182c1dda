// Package config holds the runtime configuration for workstat.
//
// Configuration comes from two places:
//   - CLI flags, collected into the flat Config struct
//   - An optional YAML file (.workstat) with per-dataset overrides such as
//     column remapping and CSV delimiters
//
// Design decision: Config is populated once after CLI parsing and passed
// through the application via dependency injection rather than global state.
// Validation happens once, up front, so later code can assume a valid
// configuration.
package config
