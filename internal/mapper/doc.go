// Package mapper is the workflow service behind every CLI command: load a
// specimen table, generate a gallery for a family and genus, move through its
// pages, and export them.
//
// State lives in the session store between invocations. Generate and export
// hold an exclusive lock file so two terminals cannot interleave runs, and a
// failed or cancelled generation never replaces the stored gallery.
package mapper
