// internal/portref/doc.go

/*
Package portref provides the textual form of a port reference used by
wiring scripts, reports and canvas events.

The format is `node.port`: a node id and a port name joined by a single dot,
e.g. `make_list.result`. Both segments are restricted to letters, digits,
underscores and hyphens.

This package centralizes parsing and formatting so every surface spells
references the same way.
*/
package portref
