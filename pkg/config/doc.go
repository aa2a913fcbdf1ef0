// Package config provides configuration management for the workplan
// generator.
//
// This package handles loading, defaulting, coercion, and compilation of the
// configuration snapshot that drives one allocation run.
//
// Configuration Types:
//
//   - Snapshot: the compiled, precondition-clean runtime form of a
//     v1alpha1.ConfigSnapshot (clamped numbers, normalized tags, task
//     libraries with overrides resolved)
//   - Settings: tool-level settings (snapshot path, listen address, log
//     level) resolved through viper with WORKPLAN_ environment overrides
//
// Configuration Sources:
//
// The snapshot document itself is plain JSON handled by Load/Save so that
// map keys such as phase names survive a save-load-save round trip byte for
// byte. Tool settings come from flags, environment, and an optional config
// file via viper.
//
// All silent-recovery defaulting lives here, in one place, so the engine
// packages can assume their inputs are already valid on entry.
package config
