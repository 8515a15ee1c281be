// Package diagnostic provides structured issues, warnings and notes produced
// while reconciling a method mapping.
//
// Severities:
//   - Error: a blocking issue (for example conflicting entity definitions).
//     A mapping with errors is never valid.
//   - Warning: recoverable drift that was repaired (stale or broken mapping rows).
//   - Info: a note about a decision, such as a method that could not be copied.
package diagnostic
