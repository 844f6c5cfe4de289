package graphql

import (
	"fmt"
	"reflect"
)

// Type is the common interface satisfied by every GraphQL type, including
// the List and NonNull wrappers.
type Type interface {
	String() string
	isType()
}

// NamedType is a Type that carries its own name and description: every
// type except List and NonNull.
type NamedType interface {
	Type
	TypeName() string
	TypeDescription() string
}

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*InputObject)(nil)
	_ Type = (*List)(nil)
	_ Type = (*NonNull)(nil)
)

// Scalar is a leaf type whose internal (Go-side) value is coerced to and
// from its GraphQL wire representation by ScalarImpl.
type Scalar struct {
	Name        string
	Description string
	Impl        ScalarImpl
}

func (t *Scalar) TypeName() string        { return t.Name }
func (t *Scalar) TypeDescription() string { return t.Description }
func (t *Scalar) String() string          { return t.Name }
func (t *Scalar) isType()                 {}

// ScalarImpl encapsulates input-coercion (external JSON-like value or a
// parsed literal -> internal value) and output-coercion (internal value ->
// external value) for one scalar, per spec.md §3.
type ScalarImpl interface {
	// CoerceInput converts a JSON-like external value (as decoded from a
	// variables map, or already reduced from a literal) to internal form.
	CoerceInput(value interface{}) (interface{}, error)
	// CoerceLiteral converts a parsed document literal directly to
	// internal form, without going through the JSON-like intermediate.
	CoerceLiteral(lit Literal) (interface{}, error)
	// CoerceOutput converts an internal value produced by a resolver to
	// its external wire representation.
	CoerceOutput(value interface{}) (interface{}, error)
}

// Enum is a bijection between GraphQL constant names and opaque internal
// values.
type Enum struct {
	Name        string
	Description string

	nameToValue map[string]interface{}
	valueToName map[interface{}]string
	valueOrder  []string
}

// NewEnum builds an Enum from an ordered name -> internal-value mapping.
// It panics if a name collides with the reserved `true`/`false`/`null`
// constants, or if two names map to the same (comparable) value.
func NewEnum(name, description string, names []string, values []interface{}) *Enum {
	if len(names) != len(values) {
		panic(fmt.Sprintf("graphql: enum %s: names and values must have equal length", name))
	}
	e := &Enum{
		Name:        name,
		Description: description,
		nameToValue: make(map[string]interface{}, len(names)),
		valueToName: make(map[interface{}]string, len(names)),
		valueOrder:  append([]string(nil), names...),
	}
	for i, n := range names {
		if n == "true" || n == "false" || n == "null" {
			panic(fmt.Sprintf("graphql: enum %s: %q is a reserved constant", name, n))
		}
		if !identifierRegexp.MatchString(n) {
			panic(fmt.Sprintf("graphql: enum %s: %q is not a valid identifier", name, n))
		}
		if _, dup := e.nameToValue[n]; dup {
			panic(fmt.Sprintf("graphql: enum %s: duplicate constant %q", name, n))
		}
		v := values[i]
		if existing, dup := e.valueToName[v]; dup {
			panic(fmt.Sprintf("graphql: enum %s: values %q and %q both map to %v", name, existing, n, v))
		}
		e.nameToValue[n] = v
		e.valueToName[v] = n
	}
	return e
}

func (t *Enum) TypeName() string        { return t.Name }
func (t *Enum) TypeDescription() string { return t.Description }
func (t *Enum) String() string          { return t.Name }
func (t *Enum) isType()                 {}

// NameFor returns the GraphQL constant name for an internal value.
func (t *Enum) NameFor(value interface{}) (string, bool) {
	n, ok := t.valueToName[value]
	return n, ok
}

// ValueFor returns the internal value for a GraphQL constant name.
func (t *Enum) ValueFor(name string) (interface{}, bool) {
	v, ok := t.nameToValue[name]
	return v, ok
}

// Names returns the enum's constant names in declaration order.
func (t *Enum) Names() []string { return t.valueOrder }

// Object is a concrete, selectable GraphQL type. ClassTag is the runtime
// identity (spec.md §9 "class identity for runtime dispatch") used by
// Schema.ObjectTypeOf to recover an Object from a resolver return value.
type Object struct {
	Name        string
	Description string
	ClassTag    reflect.Type

	Fields     map[string]*Field
	fieldOrder []string

	// Parents are the interfaces/unions this object implements, filled in
	// during Schema construction (spec.md §4.1 step 2).
	Parents []NamedType
}

func (t *Object) TypeName() string        { return t.Name }
func (t *Object) TypeDescription() string { return t.Description }
func (t *Object) String() string          { return t.Name }
func (t *Object) isType()                 {}

// FieldOrder returns field names in declaration order.
func (t *Object) FieldOrder() []string { return t.fieldOrder }

// Interface describes fields shared by a family of Objects/Interfaces.
type Interface struct {
	Name        string
	Description string

	FieldDescriptors map[string]*FieldDescriptor
	fieldOrder       []string

	// Parents are ancestor interfaces/unions.
	Parents []NamedType
	// Children are the Objects/Interfaces that declare this as a parent,
	// filled in during Schema construction.
	Children []NamedType
}

func (t *Interface) TypeName() string        { return t.Name }
func (t *Interface) TypeDescription() string { return t.Description }
func (t *Interface) String() string          { return t.Name }
func (t *Interface) isType()                 {}

func (t *Interface) FieldOrder() []string { return t.fieldOrder }

// Union is a type whose members are reached only through the child-type
// relation: its Members may include Objects or, for union-of-union
// composition, other Unions (spec.md §3 invariants require this to form
// a DAG).
type Union struct {
	Name        string
	Description string
	Members     []NamedType

	leavesCache []*Object
}

func (t *Union) TypeName() string        { return t.Name }
func (t *Union) TypeDescription() string { return t.Description }
func (t *Union) String() string          { return t.Name }
func (t *Union) isType()                 {}

// InputObject describes the fields of an input-position compound value.
type InputObject struct {
	Name        string
	Description string
	Fields      map[string]Type
	fieldOrder  []string
}

func (t *InputObject) TypeName() string        { return t.Name }
func (t *InputObject) TypeDescription() string { return t.Description }
func (t *InputObject) String() string          { return t.Name }
func (t *InputObject) isType()                 {}

func (t *InputObject) FieldOrder() []string { return t.fieldOrder }

// List wraps an element type: "[T]".
type List struct{ Of Type }

func (t *List) String() string { return fmt.Sprintf("[%s]", t.Of.String()) }
func (t *List) isType()        {}

// NonNull wraps a base or list type: "T!". Constructing one around another
// NonNull panics eagerly, matching "NonNull(NonNull(_)) is forbidden".
type NonNull struct{ Of Type }

func NewNonNull(of Type) *NonNull {
	if _, ok := of.(*NonNull); ok {
		panic("graphql: NonNull(NonNull(_)) is forbidden")
	}
	return &NonNull{Of: of}
}

func (t *NonNull) String() string { return fmt.Sprintf("%s!", t.Of.String()) }
func (t *NonNull) isType()        {}

// BaseType strips List/NonNull wrappers, returning the underlying named type.
func BaseType(t Type) NamedType {
	for {
		switch v := t.(type) {
		case *List:
			t = v.Of
		case *NonNull:
			t = v.Of
		case NamedType:
			return v
		default:
			return nil
		}
	}
}

// IsNonNull reports whether t is a NonNull wrapper.
func IsNonNull(t Type) bool {
	_, ok := t.(*NonNull)
	return ok
}
