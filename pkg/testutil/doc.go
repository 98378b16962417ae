// Package testutil provides utilities for testing printergen components.
//
// Key components:
//   - TestEnvironment: an in-memory or temp-dir filesystem with a munki repo
//     layout, a working directory and captured output
//   - CSV and plist helpers for building inputs and inspecting results
//   - Assertions on printergen error codes and rendered descriptors
//
// Tests should use EnvMemoryOnly unless they exercise code that reads the
// real filesystem, such as the preference loader.
package testutil
