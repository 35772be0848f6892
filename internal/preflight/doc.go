// Package preflight provides readiness checks for the filesystem paths and
// reference data speciesmap depends on.
//
// The CLI "status" command prints every result; generate and export run the
// directory checks first so a doomed run fails before rendering anything.
package preflight
