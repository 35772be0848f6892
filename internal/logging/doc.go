// Package logging assembles structured slog loggers for speciesmap.
//
// Console output is a compact human format tagged with the component, run id
// and operation; the log file receives JSON lines. Context helpers attach the
// active run to every line without threading attributes through call sites.
package logging
