// Package main hosts the speciesmap CLI entrypoint and command graph.
//
// Each command resolves configuration, opens the session store and calls one
// mapper.Service operation, so a working session spans several invocations:
// load a table, generate a gallery, page through it, export it.
package main
