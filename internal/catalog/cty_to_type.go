// This file bridges cty, the type system of HCL values, to catalog types.

package catalog

import (
	"fmt"
	"slices"

	"github.com/vk/portgraph/internal/typesys"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Names of the builtin types the cty bridge maps onto.
const (
	objectTypeName     = "Object"
	intTypeName        = "int"
	floatTypeName      = "float"
	stringTypeName     = "string"
	boolTypeName       = "bool"
	listTypeName       = "List"
	setTypeName        = "HashSet"
	dictionaryTypeName = "Dictionary"
)

// FromCty maps a cty type onto catalog types:
//
//	string, number, bool    -> string, float, bool
//	list(T), tuple([...])   -> List(T)
//	set(T)                  -> HashSet(T)
//	map(T), object({...})   -> Dictionary(string, T)
//	any                     -> Object
//
// Tuple and object element types are unified with cty's safe conversions;
// when they cannot be unified without a lossy conversion the element type is
// Object.
func (c *Catalog) FromCty(t cty.Type) (typesys.Type, error) {
	switch {
	case t.Equals(cty.DynamicPseudoType):
		return c.Type(objectTypeName)
	case t.Equals(cty.String):
		return c.Type(stringTypeName)
	case t.Equals(cty.Number):
		return c.Type(floatTypeName)
	case t.Equals(cty.Bool):
		return c.Type(boolTypeName)
	case t.IsListType():
		return c.collectionFromCty(listTypeName, t.ElementType())
	case t.IsSetType():
		return c.collectionFromCty(setTypeName, t.ElementType())
	case t.IsMapType():
		return c.dictionaryFromCty(t.ElementType())
	case t.IsTupleType():
		return c.collectionFromCty(listTypeName, unifyElements(t.TupleElementTypes()))
	case t.IsObjectType():
		attrs := t.AttributeTypes()
		elems := make([]cty.Type, 0, len(attrs))
		for _, name := range sortedKeys(attrs) {
			elems = append(elems, attrs[name])
		}
		return c.dictionaryFromCty(unifyElements(elems))
	default:
		return nil, fmt.Errorf("%w: no catalog type for cty type %s", ErrUnknownType, t.FriendlyName())
	}
}

func (c *Catalog) collectionFromCty(name string, elem cty.Type) (typesys.Type, error) {
	e, err := c.FromCty(elem)
	if err != nil {
		return nil, err
	}
	return c.Type(name, e)
}

func (c *Catalog) dictionaryFromCty(elem cty.Type) (typesys.Type, error) {
	key, err := c.Type(stringTypeName)
	if err != nil {
		return nil, err
	}
	e, err := c.FromCty(elem)
	if err != nil {
		return nil, err
	}
	return c.Type(dictionaryTypeName, key, e)
}

// unifyElements returns the common element type, or DynamicPseudoType when
// there is none or the only one loses information.
func unifyElements(types []cty.Type) cty.Type {
	if len(types) == 0 {
		return cty.DynamicPseudoType
	}
	unified, _ := convert.Unify(types)
	if unified == cty.NilType {
		return cty.DynamicPseudoType
	}
	if unified.IsPrimitiveType() {
		for _, t := range types {
			if !t.Equals(unified) {
				return cty.DynamicPseudoType
			}
		}
	}
	return unified
}

// FromValue is like FromCty but looks at the value: whole numbers are int,
// and collection element types are joined from the elements themselves.
func (c *Catalog) FromValue(v cty.Value) (typesys.Type, error) {
	if v.IsNull() || !v.IsKnown() {
		return c.FromCty(v.Type())
	}
	t := v.Type()
	switch {
	case t.Equals(cty.Number):
		if v.AsBigFloat().IsInt() {
			return c.Type(intTypeName)
		}
		return c.Type(floatTypeName)
	case t.IsListType() || t.IsTupleType() || t.IsSetType():
		if v.LengthInt() == 0 {
			return c.FromCty(t)
		}
		elem, err := c.joinValues(v)
		if err != nil {
			return nil, err
		}
		name := listTypeName
		if t.IsSetType() {
			name = setTypeName
		}
		return c.Type(name, elem)
	case t.IsMapType() || t.IsObjectType():
		if v.LengthInt() == 0 {
			return c.FromCty(t)
		}
		elem, err := c.joinValues(v)
		if err != nil {
			return nil, err
		}
		key, err := c.Type(stringTypeName)
		if err != nil {
			return nil, err
		}
		return c.Type(dictionaryTypeName, key, elem)
	default:
		return c.FromCty(t)
	}
}

// joinValues finds the most specific type shared by every element of a
// collection value: the common type when all agree, float when ints and
// floats mix, Object otherwise.
func (c *Catalog) joinValues(v cty.Value) (typesys.Type, error) {
	var joined typesys.Type
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		et, err := c.FromValue(ev)
		if err != nil {
			return nil, err
		}
		switch {
		case joined == nil || typesys.Equal(joined, et):
			joined = et
		case isNumeric(joined) && isNumeric(et):
			if joined, err = c.Type(floatTypeName); err != nil {
				return nil, err
			}
		default:
			return c.Type(objectTypeName)
		}
	}
	return joined, nil
}

func isNumeric(t typesys.Type) bool {
	return t.Name() == intTypeName || t.Name() == floatTypeName
}

func sortedKeys(m map[string]cty.Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
