// Package session persists the working state between CLI invocations in a
// SQLite database: the loaded dataset, the current gallery (its selection,
// color policy and species order), the page cursor, and the run history.
//
// Replacements are transactional. A new gallery is written in one transaction
// after generation succeeds, so a failed or cancelled run never leaves a
// partially replaced gallery behind.
package session
