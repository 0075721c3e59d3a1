// Package catalog provides host type descriptors declared in HCL.
//
// A catalog file declares `type` blocks:
//
//	type "List" {
//	  namespace  = "System.Collections.Generic"
//	  base       = Object
//	  interfaces = [IList(T), IReadOnlyList(T)]
//
//	  generic "T" {}
//
//	  method "Get" {
//	    param "index" {
//	      type = int
//	    }
//	    returns = T
//	  }
//	}
//
// Type expressions use call syntax for generic arguments (`List(int)`), bare
// identifiers for non-generic types and declared generics, and the `Exec`
// keyword for control flow. Descriptors may reference each other in any order
// and across files; inheritance cycles are rejected at load time.
//
// Every catalog built with NewBuiltin starts from an embedded set of common
// types (Object, int, float, string, bool, the collection interfaces, List,
// HashSet, Dictionary, KeyValuePair and Func).
package catalog
