// internal/portref/ref.go
package portref

// Ref points at one port of one node.
type Ref struct {
	Node string
	Port string
}

// String serializes the Ref into its canonical `node.port` form.
func (r Ref) String() string {
	if r.Node == "" && r.Port == "" {
		return ""
	}
	return r.Node + "." + r.Port
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool {
	return r == Ref{}
}
