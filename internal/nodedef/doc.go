// Package nodedef provides the node definitions a graph instantiates.
//
// Definitions come from three places:
//
//   - `node` blocks in HCL files declare ports explicitly, optionally with
//     several `signature` blocks that become overloads.
//   - `method` blocks turn the members of a catalog type into nodes. Every
//     member with the requested name is one overload.
//   - Constants are built from cty values; their single output is typed from
//     the value.
//
// A Library maps definition names to definitions. It is populated once at
// startup, validated, and read-only afterwards.
package nodedef
