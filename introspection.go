package graphql

import "context"

// attachIntrospectionTypes registers the __Schema/__Type/__Field/
// __InputValue/__EnumValue/__Directive/__TypeKind/__DirectiveLocation
// types directly into s.types and returns the __Schema and __Type Object
// pointers, for use as the implicit root fields' types (spec.md §4.1 step
// 5, C6 in SPEC_FULL.md).
//
// These are wired up by hand rather than through SchemaBuilder because
// their resolvers close over the *Schema itself, which does not exist
// yet at the point a SchemaBuilder would normally need it.
func attachIntrospectionTypes(s *Schema) (*Object, *Object) {
	stringType := s.scalarMust("String")
	boolType := s.scalarMust("Boolean")

	typeKind := NewEnum("__TypeKind", "An enum describing what kind of type a given __Type is.",
		[]string{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"},
		[]interface{}{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"},
	)
	directiveLocation := NewEnum("__DirectiveLocation", "A directive location is a string constant denoting where a directive may be applied.",
		[]string{"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD", "INLINE_FRAGMENT", "FIELD_DEFINITION", "ENUM_VALUE"},
		[]interface{}{"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD", "INLINE_FRAGMENT", "FIELD_DEFINITION", "ENUM_VALUE"},
	)
	s.types["__TypeKind"] = typeKind
	s.types["__DirectiveLocation"] = directiveLocation

	inputValue := &Object{Name: "__InputValue", Fields: map[string]*Field{}}
	enumValue := &Object{Name: "__EnumValue", Fields: map[string]*Field{}}
	field := &Object{Name: "__Field", Fields: map[string]*Field{}}
	typ := &Object{Name: "__Type", Fields: map[string]*Field{}}
	directive := &Object{Name: "__Directive", Fields: map[string]*Field{}}
	schemaType := &Object{Name: "__Schema", Fields: map[string]*Field{}}

	strResolve := func(fn func(interface{}) string) FieldResolve {
		return func(_ context.Context, source, _ interface{}) (interface{}, error) { return fn(source), nil }
	}
	nstrResolve := func(fn func(interface{}) *string) FieldResolve {
		return func(_ context.Context, source, _ interface{}) (interface{}, error) {
			p := fn(source)
			if p == nil {
				return nil, nil
			}
			return *p, nil
		}
	}

	setField := func(o *Object, name string, t Type, resolve FieldResolve, order *[]string) {
		o.Fields[name] = &Field{FieldDescriptor: FieldDescriptor{Name: name, FieldType: t}, Resolver: funcResolver(resolve)}
		*order = append(*order, name)
	}

	// __InputValue
	setField(inputValue, "name", NewNonNull(stringType), strResolve(func(v interface{}) string { return v.(*introspectionInputValue).Name }), &inputValue.fieldOrder)
	setField(inputValue, "description", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionInputValue).Description }), &inputValue.fieldOrder)
	setField(inputValue, "type", NewNonNull(typ), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return wrapType(source.(*introspectionInputValue).Type), nil
	}, &inputValue.fieldOrder)
	setField(inputValue, "defaultValue", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionInputValue).DefaultValue }), &inputValue.fieldOrder)

	// __EnumValue
	setField(enumValue, "name", NewNonNull(stringType), strResolve(func(v interface{}) string { return v.(*introspectionEnumValue).Name }), &enumValue.fieldOrder)
	setField(enumValue, "description", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionEnumValue).Description }), &enumValue.fieldOrder)
	setField(enumValue, "isDeprecated", NewNonNull(boolType), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionEnumValue).IsDeprecated, nil
	}, &enumValue.fieldOrder)
	setField(enumValue, "deprecationReason", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionEnumValue).DeprecationReason }), &enumValue.fieldOrder)

	// __Field
	setField(field, "name", NewNonNull(stringType), strResolve(func(v interface{}) string { return v.(*introspectionField).Name }), &field.fieldOrder)
	setField(field, "description", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionField).Description }), &field.fieldOrder)
	setField(field, "args", NewNonNull(&List{Of: NewNonNull(inputValue)}), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionField).Args, nil
	}, &field.fieldOrder)
	setField(field, "type", NewNonNull(typ), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return wrapType(source.(*introspectionField).Type), nil
	}, &field.fieldOrder)
	setField(field, "isDeprecated", NewNonNull(boolType), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionField).IsDeprecated, nil
	}, &field.fieldOrder)
	setField(field, "deprecationReason", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionField).DeprecationReason }), &field.fieldOrder)

	// __Type
	setField(typ, "kind", NewNonNull(typeKind), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionType).Kind(), nil
	}, &typ.fieldOrder)
	setField(typ, "name", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionType).Name() }), &typ.fieldOrder)
	setField(typ, "description", stringType, nstrResolve(func(v interface{}) *string { return v.(*introspectionType).Description() }), &typ.fieldOrder)
	setField(typ, "fields", &List{Of: NewNonNull(field)}, func(_ context.Context, source, args interface{}) (interface{}, error) {
		includeDeprecated, _ := args.(map[string]interface{})["includeDeprecated"].(bool)
		return source.(*introspectionType).Fields(s, includeDeprecated), nil
	}, &typ.fieldOrder)
	typ.Fields["fields"].Args = map[string]Type{"includeDeprecated": boolType}
	typ.Fields["fields"].argOrder = []string{"includeDeprecated"}
	setField(typ, "interfaces", &List{Of: NewNonNull(typ)}, func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionType).Interfaces(s), nil
	}, &typ.fieldOrder)
	setField(typ, "possibleTypes", &List{Of: NewNonNull(typ)}, func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionType).PossibleTypes(s), nil
	}, &typ.fieldOrder)
	setField(typ, "enumValues", &List{Of: NewNonNull(enumValue)}, func(_ context.Context, source, args interface{}) (interface{}, error) {
		includeDeprecated, _ := args.(map[string]interface{})["includeDeprecated"].(bool)
		return source.(*introspectionType).EnumValues(includeDeprecated), nil
	}, &typ.fieldOrder)
	typ.Fields["enumValues"].Args = map[string]Type{"includeDeprecated": boolType}
	typ.Fields["enumValues"].argOrder = []string{"includeDeprecated"}
	setField(typ, "inputFields", &List{Of: NewNonNull(inputValue)}, func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionType).InputFields(), nil
	}, &typ.fieldOrder)
	setField(typ, "ofType", typ, func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return source.(*introspectionType).OfType(), nil
	}, &typ.fieldOrder)

	// __Directive
	setField(directive, "name", NewNonNull(stringType), strResolve(func(v interface{}) string { return v.(*DirectiveType).Name }), &directive.fieldOrder)
	setField(directive, "description", stringType, nstrResolve(func(v interface{}) *string {
		d := v.(*DirectiveType)
		if d.Description == "" {
			return nil
		}
		return &d.Description
	}), &directive.fieldOrder)
	setField(directive, "locations", NewNonNull(&List{Of: NewNonNull(directiveLocation)}), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		d := source.(*DirectiveType)
		var out []string
		for loc := range d.Locations {
			out = append(out, string(loc))
		}
		return out, nil
	}, &directive.fieldOrder)
	setField(directive, "args", NewNonNull(&List{Of: NewNonNull(inputValue)}), func(_ context.Context, source, _ interface{}) (interface{}, error) {
		d := source.(*DirectiveType)
		var out []*introspectionInputValue
		for _, name := range d.ArgOrder() {
			out = append(out, &introspectionInputValue{Name: name, Type: d.Args[name]})
		}
		return out, nil
	}, &directive.fieldOrder)

	// __Schema
	setField(schemaType, "types", NewNonNull(&List{Of: NewNonNull(typ)}), func(_ context.Context, _, _ interface{}) (interface{}, error) {
		var out []*introspectionType
		for _, t := range s.Types() {
			out = append(out, &introspectionType{named: t})
		}
		return out, nil
	}, &schemaType.fieldOrder)
	setField(schemaType, "queryType", NewNonNull(typ), func(_ context.Context, _, _ interface{}) (interface{}, error) {
		return &introspectionType{named: s.Query}, nil
	}, &schemaType.fieldOrder)
	setField(schemaType, "mutationType", typ, func(_ context.Context, _, _ interface{}) (interface{}, error) {
		if s.Mutation == nil {
			return nil, nil
		}
		return &introspectionType{named: s.Mutation}, nil
	}, &schemaType.fieldOrder)
	setField(schemaType, "subscriptionType", typ, func(_ context.Context, _, _ interface{}) (interface{}, error) { return nil, nil }, &schemaType.fieldOrder)
	setField(schemaType, "directives", NewNonNull(&List{Of: NewNonNull(directive)}), func(_ context.Context, _, _ interface{}) (interface{}, error) {
		return s.Directives(), nil
	}, &schemaType.fieldOrder)

	for _, o := range []*Object{inputValue, enumValue, field, typ, directive, schemaType} {
		s.types[o.Name] = o
	}

	return schemaType, typ
}

func (s *Schema) scalarMust(name string) *Scalar {
	t, _ := s.types[name].(*Scalar)
	return t
}

// funcResolver adapts a bare FieldResolve into the Resolver interface for
// the hand-wired introspection fields above.
type funcResolver FieldResolve

func (funcResolver) isResolver()          {}
func (r funcResolver) Bind() FieldResolve { return FieldResolve(r) }

type introspectionInputValue struct {
	Name         string
	Description  *string
	Type         Type
	DefaultValue *string
}

type introspectionEnumValue struct {
	Name              string
	Description       *string
	IsDeprecated      bool
	DeprecationReason *string
}

type introspectionField struct {
	Name              string
	Description       *string
	Args              []*introspectionInputValue
	Type              Type
	IsDeprecated      bool
	DeprecationReason *string
}

// introspectionType wraps either a NamedType or a List/NonNull wrapper Type
// so __Type's recursive ofType chain can be expressed uniformly.
type introspectionType struct {
	named   NamedType
	wrapped Type
}

func wrapType(t Type) *introspectionType {
	if named, ok := t.(NamedType); ok {
		return &introspectionType{named: named}
	}
	return &introspectionType{wrapped: t}
}

func (it *introspectionType) Kind() string {
	if it.wrapped != nil {
		switch it.wrapped.(type) {
		case *List:
			return "LIST"
		case *NonNull:
			return "NON_NULL"
		}
	}
	switch it.named.(type) {
	case *Scalar:
		return "SCALAR"
	case *Enum:
		return "ENUM"
	case *Object:
		return "OBJECT"
	case *Interface:
		return "INTERFACE"
	case *Union:
		return "UNION"
	case *InputObject:
		return "INPUT_OBJECT"
	}
	return ""
}

func (it *introspectionType) Name() *string {
	if it.named == nil {
		return nil
	}
	n := it.named.TypeName()
	return &n
}

func (it *introspectionType) Description() *string {
	if it.named == nil {
		return nil
	}
	d := it.named.TypeDescription()
	if d == "" {
		return nil
	}
	return &d
}

func (it *introspectionType) OfType() *introspectionType {
	switch w := it.wrapped.(type) {
	case *List:
		return wrapType(w.Of)
	case *NonNull:
		return wrapType(w.Of)
	}
	return nil
}

func (it *introspectionType) Fields(s *Schema, includeDeprecated bool) []*introspectionField {
	switch t := it.named.(type) {
	case *Object:
		out := make([]*introspectionField, 0, len(t.fieldOrder))
		for _, name := range t.fieldOrder {
			f := t.Fields[name]
			if f.Deprecated && !includeDeprecated {
				continue
			}
			out = append(out, toIntrospectionField(f.Name, &f.FieldDescriptor))
		}
		return out
	case *Interface:
		out := make([]*introspectionField, 0, len(t.fieldOrder))
		for _, name := range t.fieldOrder {
			fd := t.FieldDescriptors[name]
			if fd.Deprecated && !includeDeprecated {
				continue
			}
			out = append(out, toIntrospectionField(fd.Name, fd))
		}
		return out
	default:
		return nil
	}
}

func toIntrospectionField(name string, fd *FieldDescriptor) *introspectionField {
	var desc *string
	if fd.Description != "" {
		desc = &fd.Description
	}
	var reason *string
	if fd.DeprecationReason != "" {
		reason = &fd.DeprecationReason
	}
	var args []*introspectionInputValue
	for _, argName := range fd.ArgOrder() {
		args = append(args, &introspectionInputValue{Name: argName, Type: fd.Args[argName]})
	}
	return &introspectionField{
		Name:              name,
		Description:       desc,
		Args:              args,
		Type:              fd.FieldType,
		IsDeprecated:      fd.Deprecated,
		DeprecationReason: reason,
	}
}

func (it *introspectionType) Interfaces(s *Schema) []*introspectionType {
	o, ok := it.named.(*Object)
	if !ok {
		return nil
	}
	var out []*introspectionType
	for _, iface := range s.AncestorInterfaces(o) {
		out = append(out, &introspectionType{named: iface})
	}
	return out
}

func (it *introspectionType) PossibleTypes(s *Schema) []*introspectionType {
	switch it.named.(type) {
	case *Interface, *Union:
	default:
		return nil
	}
	var out []*introspectionType
	for _, o := range s.PossibleTypes(it.named) {
		out = append(out, &introspectionType{named: o})
	}
	return out
}

func (it *introspectionType) EnumValues(includeDeprecated bool) []*introspectionEnumValue {
	e, ok := it.named.(*Enum)
	if !ok {
		return nil
	}
	var out []*introspectionEnumValue
	for _, name := range e.Names() {
		out = append(out, &introspectionEnumValue{Name: name})
	}
	return out
}

func (it *introspectionType) InputFields() []*introspectionInputValue {
	io, ok := it.named.(*InputObject)
	if !ok {
		return nil
	}
	var out []*introspectionInputValue
	for _, name := range io.fieldOrder {
		out = append(out, &introspectionInputValue{Name: name, Type: io.Fields[name]})
	}
	return out
}
