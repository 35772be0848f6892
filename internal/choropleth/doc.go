// Package choropleth turns one species' records into a colored snapshot of
// the reference areas plus its figure caption.
//
// Every Build call starts from a fresh Overlay, so no two species maps share
// color state. Counties that match no area are returned to the caller, which
// accumulates them in an UnmatchedSet and reports them once per run.
package choropleth
