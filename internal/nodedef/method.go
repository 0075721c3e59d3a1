package nodedef

import (
	"fmt"

	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

// Port names of method nodes besides the exec pins and parameters.
const (
	SelfPort   = "self"
	ResultPort = "result"
)

// Method is a definition that calls a member of a catalog type. Every
// declared overload of the member becomes an overload of the node.
type Method struct {
	node.NopHooks

	name     string
	cat      *catalog.Catalog
	desc     *catalog.Descriptor
	member   string
	pure     bool
	generics []string
	title    string
}

var (
	_ node.Definition = (*Method)(nil)
	_ node.Titler     = (*Method)(nil)
)

// NewMethod creates a definition called name for member of the catalog type
// typeName. Pure methods have no exec pins.
func NewMethod(cat *catalog.Catalog, name, typeName, member string, pure bool) (*Method, error) {
	desc, ok := cat.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w %q", catalog.ErrUnknownType, typeName)
	}
	if !desc.HasMember(member) {
		return nil, fmt.Errorf("%w: %s has no member %q", ErrUnknownMember, typeName, member)
	}

	var typeGenerics []string
	for _, p := range desc.GenericParams() {
		typeGenerics = append(typeGenerics, p.Name)
	}
	memberGenerics := desc.MemberGenerics(member)

	return &Method{
		name:     name,
		cat:      cat,
		desc:     desc,
		member:   member,
		pure:     pure,
		generics: append(append([]string(nil), typeGenerics...), memberGenerics...),
		title:    typeName + genericSuffix(typeGenerics) + "." + member + genericSuffix(memberGenerics),
	}, nil
}

func (m *Method) Kind() string { return m.name }

// Member names the called member.
func (m *Method) Member() string { return m.member }

func (m *Method) Signatures(s *node.Scope) ([]node.Signature, error) {
	params := m.desc.GenericParams()
	args := make([]typesys.Type, len(params))
	for i, p := range params {
		args[i] = s.Generic(p.Name)
	}
	self, err := m.cat.Type(m.desc.Name(), args...)
	if err != nil {
		return nil, err
	}

	var sigs []node.Signature
	for _, member := range self.Members() {
		if member.Name != m.member {
			continue
		}
		rename := typesys.Bindings{}
		for _, u := range member.Generics {
			rename[u] = s.Generic(u.Name())
		}

		sig := node.Signature{Name: fmt.Sprintf("%s.%s#%d", m.desc.Name(), m.member, len(sigs))}
		if !m.pure {
			sig.Inputs = append(sig.Inputs, node.PortSpec{Name: ExecInput, Type: typesys.Exec})
			sig.Outputs = append(sig.Outputs, node.PortSpec{Name: ExecOutput, Type: typesys.Exec})
		}
		sig.Inputs = append(sig.Inputs, node.PortSpec{Name: SelfPort, Type: self})
		for _, p := range member.Params {
			sig.Inputs = append(sig.Inputs, node.PortSpec{Name: p.Name, Type: typesys.Substitute(p.Type, rename)})
		}
		if member.Returns != nil {
			sig.Outputs = append(sig.Outputs, node.PortSpec{Name: ResultPort, Type: typesys.Substitute(member.Returns, rename)})
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func (m *Method) Title(n *node.Node) string {
	return renderGenerics(n, m.title, m.generics)
}

func (m *Method) GenericFixed(n *node.Node, _ *node.Port, _ typesys.Bindings) bool {
	return retitle(n, m)
}
