package typesys

// testDescriptor is a minimal Descriptor whose supertypes are computed by
// closures over the generic arguments.
type testDescriptor struct {
	name       string
	params     []GenericParam
	base       func(args []Type) Type
	interfaces func(args []Type) []Type
	bound      []Descriptor
}

func (d *testDescriptor) Name() string                  { return d.name }
func (d *testDescriptor) FullName() string              { return "test." + d.name }
func (d *testDescriptor) GenericParams() []GenericParam { return d.params }
func (d *testDescriptor) Members([]Type) []Member       { return nil }

func (d *testDescriptor) BaseType(args []Type) Type {
	if d.base == nil {
		return nil
	}
	return d.base(args)
}

func (d *testDescriptor) Interfaces(args []Type) []Type {
	if d.interfaces == nil {
		return nil
	}
	return d.interfaces(args)
}

// closedDescriptor is a testDescriptor that binds its own arguments.
type closedDescriptor struct {
	*testDescriptor
}

func (d closedDescriptor) BoundArguments() []Descriptor { return d.bound }

// fixture is a small host type system:
//
//	Object
//	Parent : Object
//	Child  : Parent
//	int    : Object
//	string : Object
//	IEnumerable<out T>
//	IReadOnlyList<out T> : IEnumerable<T>
//	IList<T>             : IEnumerable<T>
//	List<T>       : Object, IList<T>, IReadOnlyList<T>
//	Pair<K, V>    : Object
//	Action<in T>  : Object
type fixture struct {
	reg *Registry

	object, parent, child, integer, str *ConcreteType

	enumerable, readOnlyList, list, iList, pair, action *testDescriptor
}

func newFixture() *fixture {
	f := &fixture{reg: NewRegistry()}
	objectD := &testDescriptor{name: "Object"}
	f.object = f.reg.MustGet(objectD)
	objectBase := func([]Type) Type { return f.object }

	parentD := &testDescriptor{name: "Parent", base: objectBase}
	f.parent = f.reg.MustGet(parentD)
	childD := &testDescriptor{name: "Child", base: func([]Type) Type { return f.parent }}
	f.child = f.reg.MustGet(childD)
	f.integer = f.reg.MustGet(&testDescriptor{name: "int", base: objectBase})
	f.str = f.reg.MustGet(&testDescriptor{name: "string", base: objectBase})

	out := []GenericParam{{Name: "T", Variance: Covariant}}
	f.enumerable = &testDescriptor{name: "IEnumerable", params: out}
	enumerableOf := func(args []Type) []Type {
		return []Type{f.reg.MustGet(f.enumerable, args[0])}
	}
	f.readOnlyList = &testDescriptor{name: "IReadOnlyList", params: out, interfaces: enumerableOf}
	f.iList = &testDescriptor{name: "IList", params: []GenericParam{{Name: "T"}}, interfaces: enumerableOf}
	f.list = &testDescriptor{
		name:   "List",
		params: []GenericParam{{Name: "T"}},
		base:   objectBase,
		interfaces: func(args []Type) []Type {
			return []Type{
				f.reg.MustGet(f.iList, args[0]),
				f.reg.MustGet(f.readOnlyList, args[0]),
			}
		},
	}
	f.pair = &testDescriptor{name: "Pair", params: []GenericParam{{Name: "K"}, {Name: "V"}}, base: objectBase}
	f.action = &testDescriptor{name: "Action", params: []GenericParam{{Name: "T", Variance: Contravariant}}, base: objectBase}
	return f
}

func (f *fixture) List(t Type) *ConcreteType          { return f.reg.MustGet(f.list, t) }
func (f *fixture) Enumerable(t Type) *ConcreteType    { return f.reg.MustGet(f.enumerable, t) }
func (f *fixture) ReadOnlyList(t Type) *ConcreteType  { return f.reg.MustGet(f.readOnlyList, t) }
func (f *fixture) Pair(k, v Type) *ConcreteType       { return f.reg.MustGet(f.pair, k, v) }
func (f *fixture) Action(t Type) *ConcreteType        { return f.reg.MustGet(f.action, t) }
func (f *fixture) T(name string) *UndefinedGenericType { return f.reg.NewUndefined(name) }
