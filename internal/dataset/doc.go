// Package dataset reads specimen tables (xlsx or csv) into records and
// reconciles their county values against the reference areas.
//
// Loading is all or nothing: a missing required column or a table with no
// county matching a reference area yields an error and no Dataset, so callers
// keep whatever they had loaded before.
package dataset
