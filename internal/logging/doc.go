// Package logging implements pbcore.Logger.
//
//   - ConsoleLogger writes prefixed lines to a writer (the CLI passes its stderr).
//   - NullLogger discards everything.
//   - Recorder keeps messages in memory for inspection in tests.
//
// All implementations are safe for concurrent use.
package logging
