// Package ui provides terminal UI components for the k4tool CLI.
//
// Most commands run once and exit. They use a Printer, which draws
// Lipgloss boxes when stdout is a terminal and plain "Key: value" lines
// when it is not, so output stays usable in pipes and scripts:
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, warning and failure boxes with ordered details
//   - Confirm: yes/no prompt before overwriting a file
//
// The browse command is interactive: BrowseModel is a Bubble Tea model
// built on bubbles/list that shows the single and multi patches of a bank
// dump on two tabs, with filtering.
//
// # Logging Integration
//
// Logging is controlled via --log-level or the K4TOOL_LOG_LEVEL
// environment variable and goes to stderr, so it never mixes with the
// output written here.
package ui
