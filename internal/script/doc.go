// Package script applies HCL wiring scripts to a graph.
//
// A script is a sequence of blocks executed in source order:
//
//	instance "list" {
//	  node = "to_list"
//	}
//
//	constant "numbers" {
//	  value = [1, 2, 3]
//	}
//
//	link {
//	  from = "numbers.value"
//	  to   = "list.source"
//	}
//
//	fix "list" {
//	  generic = "T"
//	  type    = int
//	}
//
//	overload "log" {
//	  index = 1
//	}
//
// `unlink` takes the same attributes as `link`, and `remove "id" {}` deletes
// a node. Port references use the `node.port` form of package portref; the
// first names an output and the second an input.
package script
