package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t Type) ([]Type, []int) {
	var types []Type
	var depths []int
	for typ, depth := range AssignableTypes(t) {
		types = append(types, typ)
		depths = append(depths, depth)
	}
	return types, depths
}

func TestAssignableTypes(t *testing.T) {
	f := newFixture()

	t.Run("base chain", func(t *testing.T) {
		types, depths := collect(f.child)
		assert.Equal(t, []Type{f.child, f.parent, f.object}, types)
		assert.Equal(t, []int{0, 1, 2}, depths)
	})

	t.Run("base chain before interfaces, depth first", func(t *testing.T) {
		list := f.List(f.integer)
		types, depths := collect(list)
		assert.Equal(t, []Type{
			list,
			f.object,
			f.reg.MustGet(f.iList, f.integer),
			f.Enumerable(f.integer),
			f.ReadOnlyList(f.integer),
			f.Enumerable(f.integer),
		}, types)
		assert.Equal(t, []int{0, 1, 1, 2, 1, 2}, depths)
	})

	t.Run("every implemented interface is produced", func(t *testing.T) {
		distinct := map[string]bool{}
		types, _ := collect(f.List(f.child))
		for _, typ := range types {
			distinct[typ.Name()] = true
		}
		assert.Len(t, distinct, 5)
		for _, name := range []string{"List", "Object", "IList", "IReadOnlyList", "IEnumerable"} {
			assert.True(t, distinct[name], name)
		}
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		count := 0
		for range AssignableTypes(f.List(f.integer)) {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})

	t.Run("nil yields nothing", func(t *testing.T) {
		types, _ := collect(nil)
		assert.Empty(t, types)
	})
}

func TestIsAssignableTo_Subtypes(t *testing.T) {
	f := newFixture()
	transitive := AssignOptions{AllowTransitive: true}

	res, ok := IsAssignableTo(f.child, f.parent, transitive)
	require.True(t, ok)
	assert.Empty(t, res.Source)
	assert.Empty(t, res.Target)
	assert.Equal(t, 1, res.Depth)

	res, ok = IsAssignableTo(f.parent, f.child, transitive)
	assert.False(t, ok)
	assert.Nil(t, res.Source)
	assert.Nil(t, res.Target)

	_, ok = IsAssignableTo(f.child, f.parent, AssignOptions{})
	assert.False(t, ok, "without transitivity only the type itself is tried")

	_, ok = IsAssignableTo(f.parent, f.child, AssignOptions{AllowTransitive: true, BothDirections: true})
	assert.False(t, ok, "reverse search only applies when placeholders are involved")
}

func TestIsAssignableTo_Variance(t *testing.T) {
	f := newFixture()
	transitive := AssignOptions{AllowTransitive: true}

	testCases := []struct {
		name   string
		source Type
		target Type
		expect bool
	}{
		{"covariant enumerable", f.List(f.child), f.Enumerable(f.parent), true},
		{"nested covariant", f.List(f.List(f.child)), f.ReadOnlyList(f.Enumerable(f.parent)), true},
		{"invariant list", f.List(f.child), f.List(f.parent), false},
		{"nested invariant", f.List(f.List(f.child)), f.List(f.Enumerable(f.parent)), false},
		{"contravariant accepts wider", f.Action(f.parent), f.Action(f.child), true},
		{"contravariant rejects narrower", f.Action(f.child), f.Action(f.parent), false},
		{"same type", f.List(f.integer), f.List(f.integer), true},
		{"unrelated", f.integer, f.str, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := IsAssignableTo(tc.source, tc.target, transitive)
			assert.Equal(t, tc.expect, ok)
		})
	}
}

func TestIsDirectlyAssignableTo(t *testing.T) {
	f := newFixture()

	t.Run("binds placeholder argument once", func(t *testing.T) {
		T := f.T("T")
		b, ok := IsDirectlyAssignableTo(f.List(f.integer), f.List(T), true)
		require.True(t, ok)
		require.Len(t, b, 1)
		assert.Same(t, f.integer, b[T])
	})

	t.Run("target placeholder binds whole source", func(t *testing.T) {
		T := f.T("T")
		list := f.List(f.integer)
		b, ok := IsDirectlyAssignableTo(list, T, true)
		require.True(t, ok)
		assert.Equal(t, Bindings{T: list}, b)
	})

	t.Run("source placeholder binds whole target", func(t *testing.T) {
		T := f.T("T")
		b, ok := IsDirectlyAssignableTo(T, f.parent, true)
		require.True(t, ok)
		assert.Equal(t, Bindings{T: f.parent}, b)
	})

	t.Run("two placeholders unify without bindings", func(t *testing.T) {
		b, ok := IsDirectlyAssignableTo(f.T("T"), f.T("U"), true)
		require.True(t, ok)
		assert.NotNil(t, b)
		assert.Empty(t, b)
	})

	t.Run("different descriptors fail with absent bindings", func(t *testing.T) {
		b, ok := IsDirectlyAssignableTo(f.List(f.integer), f.Enumerable(f.integer), true)
		assert.False(t, ok)
		assert.Nil(t, b)
	})

	t.Run("generics ignored on request", func(t *testing.T) {
		b, ok := IsDirectlyAssignableTo(f.List(f.integer), f.List(f.str), false)
		assert.True(t, ok)
		assert.Empty(t, b)
	})

	t.Run("conflicting bindings fail", func(t *testing.T) {
		T := f.T("T")
		_, ok := IsDirectlyAssignableTo(f.Pair(f.integer, f.str), f.Pair(T, T), true)
		assert.False(t, ok)

		b, ok := IsDirectlyAssignableTo(f.Pair(f.integer, f.integer), f.Pair(T, T), true)
		require.True(t, ok)
		assert.Equal(t, Bindings{T: f.integer}, b)
	})

	t.Run("exec only matches exec", func(t *testing.T) {
		_, ok := IsDirectlyAssignableTo(Exec, Exec, true)
		assert.True(t, ok)
		_, ok = IsDirectlyAssignableTo(Exec, f.T("T"), true)
		assert.False(t, ok)
		_, ok = IsDirectlyAssignableTo(f.T("T"), Exec, true)
		assert.False(t, ok)
		_, ok = IsDirectlyAssignableTo(f.integer, Exec, true)
		assert.False(t, ok)
	})
}

func TestIsAssignableTo_Generics(t *testing.T) {
	f := newFixture()
	both := AssignOptions{AllowTransitive: true, BothDirections: true}

	t.Run("placeholder in covariant target through interface", func(t *testing.T) {
		T := f.T("T")
		res, ok := IsAssignableTo(f.List(f.integer), f.Enumerable(T), AssignOptions{AllowTransitive: true})
		require.True(t, ok)
		assert.Empty(t, res.Source)
		assert.Equal(t, Bindings{T: f.integer}, res.Target)
		assert.Equal(t, 2, res.Depth)
		assert.False(t, res.Reversed)
	})

	t.Run("reverse walk resolves source placeholder", func(t *testing.T) {
		T1 := f.T("T1")
		source := f.Enumerable(T1)
		target := f.List(f.integer)

		_, ok := IsAssignableTo(source, target, AssignOptions{AllowTransitive: true})
		require.False(t, ok)

		res, ok := IsAssignableTo(source, target, both)
		require.True(t, ok)
		assert.True(t, res.Reversed)
		assert.Equal(t, Bindings{T1: f.integer}, res.Source)
		assert.Empty(t, res.Target)
	})

	t.Run("bindings are split by side", func(t *testing.T) {
		T := f.T("T")
		U := f.T("U")
		res, ok := IsAssignableTo(f.Pair(T, f.str), f.Pair(f.integer, U), both)
		require.True(t, ok)
		assert.Equal(t, Bindings{T: f.integer}, res.Source)
		assert.Equal(t, Bindings{U: f.str}, res.Target)
		assert.True(t, res.HasBindings())
	})
}

// valueDescriptor is a Descriptor held by value. Its slice field makes it
// uncomparable with ==.
type valueDescriptor struct {
	name   string
	params []GenericParam
}

func (d valueDescriptor) Name() string                  { return d.name }
func (d valueDescriptor) FullName() string              { return "value." + d.name }
func (d valueDescriptor) GenericParams() []GenericParam { return d.params }
func (d valueDescriptor) BaseType([]Type) Type          { return nil }
func (d valueDescriptor) Interfaces([]Type) []Type      { return nil }
func (d valueDescriptor) Members([]Type) []Member       { return nil }

func TestIsDirectlyAssignableTo_ValueDescriptors(t *testing.T) {
	reg := NewRegistry()
	box := valueDescriptor{name: "Box", params: []GenericParam{{Name: "T"}}}
	num := reg.MustGet(valueDescriptor{name: "num"})
	text := reg.MustGet(valueDescriptor{name: "text"})
	T := reg.NewUndefined("T")

	b, ok := IsDirectlyAssignableTo(reg.MustGet(box, num), reg.MustGet(box, T), true)
	require.True(t, ok)
	assert.Same(t, num, b[T])

	_, ok = IsDirectlyAssignableTo(num, text, true)
	assert.False(t, ok)
	_, ok = IsDirectlyAssignableTo(reg.MustGet(box, num), reg.MustGet(box, text), true)
	assert.False(t, ok)

	a, ok := IsAssignableTo(reg.MustGet(box, num), reg.MustGet(box, num), AssignOptions{AllowTransitive: true})
	require.True(t, ok)
	assert.Zero(t, a.Depth)
}
