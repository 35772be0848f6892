// Package taxonomy narrows specimen records by family and genus and
// enumerates the species that remain.
//
// Species come back in first-occurrence order. That order assigns figure
// numbers, so it must not be replaced by a sorted or hashed one.
package taxonomy
