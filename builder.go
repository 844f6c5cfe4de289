package graphql

import (
	"fmt"
	"reflect"
	"sort"
)

// Arg describes one argument of a field or directive at build time: a
// type reference string (resolved once every type name is known) plus an
// optional default literal value.
type Arg struct {
	TypeRef      string
	Default      interface{}
	HasDefault   bool
}

// FieldOption configures a field being registered on an ObjectBuilder or
// InterfaceBuilder.
type FieldOption func(*fieldSpec)

type fieldSpec struct {
	description string
	args        map[string]Arg
	deprecated  bool
	reason      string
}

func WithDescription(d string) FieldOption { return func(f *fieldSpec) { f.description = d } }

func WithArgs(args map[string]Arg) FieldOption {
	return func(f *fieldSpec) { f.args = args }
}

func WithDeprecation(reason string) FieldOption {
	return func(f *fieldSpec) {
		f.deprecated = true
		f.reason = reason
	}
}

type pendingField struct {
	name     string
	typeRef  string
	resolver Resolver
	spec     fieldSpec
}

// ObjectBuilder accumulates the fields of one Object type before Build.
type ObjectBuilder struct {
	name        string
	description string
	goType      reflect.Type
	fields      []pendingField
	implements  []string
}

func (b *ObjectBuilder) FieldFunc(name, typeRef string, resolver Resolver, opts ...FieldOption) *ObjectBuilder {
	spec := fieldSpec{}
	for _, o := range opts {
		o(&spec)
	}
	b.fields = append(b.fields, pendingField{name: name, typeRef: typeRef, resolver: resolver, spec: spec})
	return b
}

// Implements declares that this object satisfies the named Interface(s)
// or Union(s); spec.md §9's "host-language inheritance graph" abstraction
// reduced to an explicit call, as the note invites.
func (b *ObjectBuilder) Implements(names ...string) *ObjectBuilder {
	b.implements = append(b.implements, names...)
	return b
}

// InterfaceBuilder accumulates the field descriptors of one Interface.
type InterfaceBuilder struct {
	name        string
	description string
	goType      reflect.Type
	fields      []pendingField
	implements  []string
}

func (b *InterfaceBuilder) FieldFunc(name, typeRef string, opts ...FieldOption) *InterfaceBuilder {
	spec := fieldSpec{}
	for _, o := range opts {
		o(&spec)
	}
	b.fields = append(b.fields, pendingField{name: name, typeRef: typeRef, spec: spec})
	return b
}

func (b *InterfaceBuilder) Implements(names ...string) *InterfaceBuilder {
	b.implements = append(b.implements, names...)
	return b
}

// UnionBuilder accumulates the members of one Union.
type UnionBuilder struct {
	name        string
	description string
	members     []string
}

func (b *UnionBuilder) AddMember(names ...string) *UnionBuilder {
	b.members = append(b.members, names...)
	return b
}

// InputObjectBuilder accumulates the fields of one InputObject.
type InputObjectBuilder struct {
	name        string
	description string
	fields      map[string]Arg
	fieldOrder  []string
}

func (b *InputObjectBuilder) Field(name, typeRef string, opts ...Arg) *InputObjectBuilder {
	a := Arg{TypeRef: typeRef}
	if len(opts) > 0 {
		a = opts[0]
		a.TypeRef = typeRef
	}
	if _, dup := b.fields[name]; dup {
		panic(fmt.Sprintf("graphql: duplicate input field %s.%s", b.name, name))
	}
	b.fields[name] = a
	b.fieldOrder = append(b.fieldOrder, name)
	return b
}

type directiveSpec struct {
	name        string
	description string
	locations   []DirectiveLocation
	args        map[string]Arg
}

// SchemaBuilder is the explicit-descriptor registration API named in
// spec.md §9 ("a builder API that accepts explicit descriptors").
type SchemaBuilder struct {
	scalars      map[string]*Scalar
	enums        map[string]*Enum
	objects      map[string]*ObjectBuilder
	interfaces   map[string]*InterfaceBuilder
	unions       map[string]*UnionBuilder
	inputObjects map[string]*InputObjectBuilder
	directives   map[string]*directiveSpec

	queryName    string
	mutationName string
}

// NewSchemaBuilder creates a builder pre-populated with the five built-in
// scalars and the @include/@skip/@deprecated directives (spec.md §3, §4.1
// steps 5-6).
func NewSchemaBuilder() *SchemaBuilder {
	b := &SchemaBuilder{
		scalars:      map[string]*Scalar{},
		enums:        map[string]*Enum{},
		objects:      map[string]*ObjectBuilder{},
		interfaces:   map[string]*InterfaceBuilder{},
		unions:       map[string]*UnionBuilder{},
		inputObjects: map[string]*InputObjectBuilder{},
		directives:   map[string]*directiveSpec{},
	}
	for name, impl := range builtinScalarImpls() {
		b.scalars[name] = &Scalar{Name: name, Description: builtinScalarDescriptions[name], Impl: impl}
	}
	b.directives["include"] = &directiveSpec{
		name:        "include",
		description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
		locations:   []DirectiveLocation{LocationField, LocationFragmentSpread, LocationInlineFragment},
		args:        map[string]Arg{"if": {TypeRef: "Boolean!"}},
	}
	b.directives["skip"] = &directiveSpec{
		name:        "skip",
		description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
		locations:   []DirectiveLocation{LocationField, LocationFragmentSpread, LocationInlineFragment},
		args:        map[string]Arg{"if": {TypeRef: "Boolean!"}},
	}
	b.directives["deprecated"] = &directiveSpec{
		name:        "deprecated",
		description: "Marks an element of a GraphQL schema as no longer supported.",
		locations:   []DirectiveLocation{LocationFieldDefinition, LocationEnumValue},
		args:        map[string]Arg{"reason": {TypeRef: "String", Default: "No longer supported", HasDefault: true}},
	}
	return b
}

func (b *SchemaBuilder) Scalar(name, description string, impl ScalarImpl) *Scalar {
	s := &Scalar{Name: name, Description: description, Impl: impl}
	b.scalars[name] = s
	return s
}

func (b *SchemaBuilder) Enum(name, description string, names []string, values []interface{}) *Enum {
	e := NewEnum(name, description, names, values)
	b.enums[name] = e
	return e
}

func (b *SchemaBuilder) Object(name, description string, goType interface{}) *ObjectBuilder {
	ob := &ObjectBuilder{name: name, description: description, goType: goTypeOf(goType)}
	b.objects[name] = ob
	return ob
}

func (b *SchemaBuilder) Interface(name, description string, goType interface{}) *InterfaceBuilder {
	ib := &InterfaceBuilder{name: name, description: description, goType: goTypeOf(goType)}
	b.interfaces[name] = ib
	return ib
}

func (b *SchemaBuilder) Union(name, description string) *UnionBuilder {
	ub := &UnionBuilder{name: name, description: description}
	b.unions[name] = ub
	return ub
}

func (b *SchemaBuilder) InputObject(name, description string) *InputObjectBuilder {
	ib := &InputObjectBuilder{name: name, description: description, fields: map[string]Arg{}}
	b.inputObjects[name] = ib
	return ib
}

func (b *SchemaBuilder) Directive(name, description string, locations []DirectiveLocation, args map[string]Arg) {
	b.directives[name] = &directiveSpec{name: name, description: description, locations: locations, args: args}
}

func (b *SchemaBuilder) SetQuery(name string) { b.queryName = name }
func (b *SchemaBuilder) SetMutation(name string) { b.mutationName = name }

func goTypeOf(v interface{}) reflect.Type {
	if v == nil {
		return nil
	}
	t, ok := v.(reflect.Type)
	if ok {
		return t
	}
	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt
}

// Build validates and assembles the immutable Schema (spec.md §4.1).
func (b *SchemaBuilder) Build() (*Schema, error) {
	s := &Schema{
		types:              map[string]NamedType{},
		directives:         map[string]*DirectiveType{},
		classTags:          map[reflect.Type]*Object{},
		commonFields:       map[string]*FieldDescriptor{},
		implicitRootFields: map[string]*FieldDescriptor{},
		docCache:           newDocumentCache(defaultDocumentCacheSize),
	}

	// Pass 0: name validation and uniqueness across every kind of
	// declared type (spec.md §3 "A declared type name is unique across
	// the schema").
	seen := map[string]bool{}
	declare := func(kind, name string) error {
		if err := validateName(kind, name); err != nil {
			return err
		}
		if seen[name] {
			return fmt.Errorf("graphql: duplicate type name %q", name)
		}
		seen[name] = true
		return nil
	}
	for name := range b.scalars {
		if err := declare("scalar", name); err != nil {
			return nil, err
		}
	}
	for name := range b.enums {
		if err := declare("enum", name); err != nil {
			return nil, err
		}
	}
	for name := range b.objects {
		if err := declare("object", name); err != nil {
			return nil, err
		}
	}
	for name := range b.interfaces {
		if err := declare("interface", name); err != nil {
			return nil, err
		}
	}
	for name := range b.unions {
		if err := declare("union", name); err != nil {
			return nil, err
		}
	}
	for name := range b.inputObjects {
		if err := declare("input object", name); err != nil {
			return nil, err
		}
	}

	// Pass 1: create empty named-type shells so forward/mutual type
	// references resolve during pass 2.
	for name, sc := range b.scalars {
		s.types[name] = sc
	}
	for name, e := range b.enums {
		s.types[name] = e
	}
	objShells := map[string]*Object{}
	for name, ob := range b.objects {
		o := &Object{Name: name, Description: ob.description, ClassTag: ob.goType, Fields: map[string]*Field{}}
		objShells[name] = o
		s.types[name] = o
		if ob.goType != nil {
			s.classTags[ob.goType] = o
		}
	}
	ifaceShells := map[string]*Interface{}
	for name, ib := range b.interfaces {
		i := &Interface{Name: name, Description: ib.description, FieldDescriptors: map[string]*FieldDescriptor{}}
		ifaceShells[name] = i
		s.types[name] = i
	}
	unionShells := map[string]*Union{}
	for name, ub := range b.unions {
		u := &Union{Name: name, Description: ub.description}
		unionShells[name] = u
		s.types[name] = u
	}
	inputShells := map[string]*InputObject{}
	for name, pb := range b.inputObjects {
		io := &InputObject{Name: name, Description: pb.description, Fields: map[string]Type{}}
		inputShells[name] = io
		s.types[name] = io
	}

	resolveRef := func(ref string, reqInput, reqOutput bool) (Type, error) {
		return s.GetType(ref, reqInput, reqOutput)
	}

	// Pass 2: fill in input object fields.
	for name, pb := range b.inputObjects {
		io := inputShells[name]
		for _, fname := range pb.fieldOrder {
			arg := pb.fields[fname]
			t, err := resolveRef(arg.TypeRef, true, false)
			if err != nil {
				return nil, fmt.Errorf("graphql: input object %s.%s: %w", name, fname, err)
			}
			io.Fields[fname] = t
			io.fieldOrder = append(io.fieldOrder, fname)
		}
	}

	// Pass 3: fill in interface field descriptors and parent edges.
	for name, ib := range b.interfaces {
		iface := ifaceShells[name]
		for _, p := range ib.implements {
			parent, ok := s.types[p]
			if !ok {
				return nil, fmt.Errorf("graphql: interface %s implements unknown type %q", name, p)
			}
			iface.Parents = append(iface.Parents, parent)
		}
		for _, pf := range ib.fields {
			if pf.name == "__typename" {
				return nil, fmt.Errorf("graphql: %s.%s: fields may not shadow __typename", name, pf.name)
			}
			t, err := resolveRef(pf.typeRef, false, true)
			if err != nil {
				return nil, fmt.Errorf("graphql: interface %s.%s: %w", name, pf.name, err)
			}
			fd, err := buildFieldDescriptor(pf, t, resolveRef)
			if err != nil {
				return nil, err
			}
			iface.FieldDescriptors[pf.name] = fd
			iface.fieldOrder = append(iface.fieldOrder, pf.name)
		}
	}

	// Pass 4: fill in object fields (merging surfaces), parent edges.
	for name, ob := range b.objects {
		o := objShells[name]
		for _, p := range ob.implements {
			parent, ok := s.types[p]
			if !ok {
				return nil, fmt.Errorf("graphql: object %s implements unknown type %q", name, p)
			}
			o.Parents = append(o.Parents, parent)
		}
		ordered := append([]pendingField(nil), ob.fields...)
		if ob.goType != nil {
			ordered = append(ordered, surfaceFields(b, ob.goType, name)...)
		}
		for _, pf := range ordered {
			if pf.name == "__typename" {
				return nil, fmt.Errorf("graphql: %s.%s: fields may not shadow __typename", name, pf.name)
			}
			if _, dup := o.Fields[pf.name]; dup {
				continue // most-derived surface wins
			}
			t, err := resolveRef(pf.typeRef, false, true)
			if err != nil {
				return nil, fmt.Errorf("graphql: object %s.%s: %w", name, pf.name, err)
			}
			fd, err := buildFieldDescriptor(pf, t, resolveRef)
			if err != nil {
				return nil, err
			}
			o.Fields[pf.name] = &Field{FieldDescriptor: *fd, Resolver: pf.resolver}
			o.fieldOrder = append(o.fieldOrder, pf.name)
		}
		// Assignment compatibility against every declared interface
		// parent (spec.md §4.1 step 3).
		for _, parent := range o.Parents {
			iface, ok := parent.(*Interface)
			if !ok {
				continue
			}
			if err := checkAssignmentCompatible(s, o, iface); err != nil {
				return nil, err
			}
		}
	}

	// Pass 5: union members, then cycle-check the union-of-union graph.
	for name, ub := range b.unions {
		u := unionShells[name]
		for _, m := range ub.members {
			member, ok := s.types[m]
			if !ok {
				return nil, fmt.Errorf("graphql: union %s has unknown member %q", name, m)
			}
			switch member.(type) {
			case *Object, *Union:
			default:
				return nil, fmt.Errorf("graphql: union %s member %q must be an object or union", name, m)
			}
			u.Members = append(u.Members, member)
		}
	}
	if err := checkUnionDAG(unionShells); err != nil {
		return nil, err
	}

	// Pass 6: fill in Interface.Children (objects/interfaces that declare
	// a parent edge to it), used by introspection.
	for _, named := range s.types {
		var parents []NamedType
		switch t := named.(type) {
		case *Object:
			parents = t.Parents
		case *Interface:
			parents = t.Parents
		}
		for _, p := range parents {
			if iface, ok := p.(*Interface); ok {
				iface.Children = append(iface.Children, named)
			}
		}
	}

	// Pass 7: directives.
	for name, ds := range b.directives {
		args := map[string]Type{}
		var order []string
		for argName := range ds.args {
			order = append(order, argName)
		}
		sort.Strings(order)
		for _, argName := range order {
			a := ds.args[argName]
			t, err := resolveRef(a.TypeRef, true, false)
			if err != nil {
				return nil, fmt.Errorf("graphql: directive @%s(%s): %w", name, argName, err)
			}
			args[argName] = t
		}
		locs := map[DirectiveLocation]bool{}
		for _, l := range ds.locations {
			locs[l] = true
		}
		s.directives[name] = &DirectiveType{
			Name:        name,
			Description: ds.description,
			Locations:   locs,
			Args:        args,
			argOrder:    order,
		}
	}

	// Pass 8: common (__typename) and implicit root (__schema, __type)
	// field sets (spec.md §4.1 step 5).
	s.commonFields["__typename"] = &FieldDescriptor{Name: "__typename", FieldType: NewNonNull(s.scalarMust("String"))}
	if b.queryName != "" {
		q, ok := objShells[b.queryName]
		if !ok {
			return nil, fmt.Errorf("graphql: unknown query root object %q", b.queryName)
		}
		s.Query = q
	}
	if b.mutationName != "" {
		m, ok := objShells[b.mutationName]
		if !ok {
			return nil, fmt.Errorf("graphql: unknown mutation root object %q", b.mutationName)
		}
		s.Mutation = m
	}
	introspectionSchemaType, introspectionTypeType := attachIntrospectionTypes(s)
	s.implicitRootFields["__schema"] = &FieldDescriptor{
		Name:      "__schema",
		FieldType: NewNonNull(introspectionSchemaType),
	}
	s.implicitRootFields["__type"] = &FieldDescriptor{
		Name:      "__type",
		FieldType: introspectionTypeType,
		Args:      map[string]Type{"name": NewNonNull(s.scalarMust("String"))},
		argOrder:  []string{"name"},
	}

	return s, nil
}

func buildFieldDescriptor(pf pendingField, t Type, resolveRef func(string, bool, bool) (Type, error)) (*FieldDescriptor, error) {
	fd := &FieldDescriptor{
		Name:              pf.name,
		FieldType:         t,
		Description:       pf.spec.description,
		Deprecated:        pf.spec.deprecated,
		DeprecationReason: pf.spec.reason,
		Args:              map[string]Type{},
	}
	var order []string
	for name := range pf.spec.args {
		order = append(order, name)
	}
	sort.Strings(order)
	for _, name := range order {
		a := pf.spec.args[name]
		at, err := resolveRef(a.TypeRef, true, false)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", name, err)
		}
		fd.Args[name] = at
	}
	fd.argOrder = order
	return fd, nil
}

// surfaceFields walks the ancestor (embedded-struct) surfaces of goType,
// excluding the type itself, collecting their registered object fields in
// most-derived-to-least-derived order — spec.md §4.1 step 3 / §9's
// "subclass-walk field inheritance" abstraction.
func surfaceFields(b *SchemaBuilder, goType reflect.Type, selfName string) []pendingField {
	var out []pendingField
	surfaces := surfacesOf(goType)
	for _, surface := range surfaces[1:] {
		for otherName, ob := range b.objects {
			if otherName == selfName || ob.goType != surface {
				continue
			}
			out = append(out, ob.fields...)
		}
	}
	return out
}

// checkAssignmentCompatible enforces spec.md §4.1 step 3's subclass rule:
// a field shared between an object and an interface it implements must
// have a subtype field type, and every interface argument must be present
// on the object with an identical type (extra object arguments are
// allowed only if nullable).
func checkAssignmentCompatible(s *Schema, o *Object, iface *Interface) error {
	for name, ifd := range iface.FieldDescriptors {
		of, ok := o.Fields[name]
		if !ok {
			return fmt.Errorf("graphql: object %s does not implement %s.%s", o.Name, iface.Name, name)
		}
		if !isOutputSubtype(s, of.FieldType, ifd.FieldType) {
			return fmt.Errorf("graphql: object %s.%s type %s is not assignment-compatible with %s.%s type %s",
				o.Name, name, of.FieldType, iface.Name, name, ifd.FieldType)
		}
		for argName, ifaceArgType := range ifd.Args {
			objArgType, ok := of.Args[argName]
			if !ok {
				return fmt.Errorf("graphql: object %s.%s is missing required argument %s from %s", o.Name, name, argName, iface.Name)
			}
			if objArgType.String() != ifaceArgType.String() {
				return fmt.Errorf("graphql: object %s.%s argument %s type %s does not match %s.%s type %s",
					o.Name, name, argName, objArgType, iface.Name, name, ifaceArgType)
			}
		}
		for argName, objArgType := range of.Args {
			if _, ok := ifd.Args[argName]; ok {
				continue
			}
			if IsNonNull(objArgType) {
				return fmt.Errorf("graphql: object %s.%s extra argument %s must be nullable", o.Name, name, argName)
			}
		}
	}
	return nil
}

// isOutputSubtype reports whether `got` is subtype-of `want` for field
// covariance purposes, recursing through List/NonNull wrappers.
func isOutputSubtype(s *Schema, got, want Type) bool {
	if wn, ok := want.(*NonNull); ok {
		gn, ok := got.(*NonNull)
		if !ok {
			return false
		}
		return isOutputSubtype(s, gn.Of, wn.Of)
	}
	if gn, ok := got.(*NonNull); ok {
		return isOutputSubtype(s, gn.Of, want)
	}
	if wl, ok := want.(*List); ok {
		gl, ok := got.(*List)
		if !ok {
			return false
		}
		return isOutputSubtype(s, gl.Of, wl.Of)
	}
	gNamed, gok := got.(NamedType)
	wNamed, wok := want.(NamedType)
	if !gok || !wok {
		return false
	}
	return s.IsSubtype(gNamed, wNamed)
}

func checkUnionDAG(unions map[string]*Union) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var visit func(name string, u *Union) error
	visit = func(name string, u *Union) error {
		color[name] = gray
		for _, m := range u.Members {
			if mu, ok := m.(*Union); ok {
				switch color[mu.Name] {
				case gray:
					return fmt.Errorf("graphql: union cycle detected: %s => %s", name, mu.Name)
				case white:
					if err := visit(mu.Name, unions[mu.Name]); err != nil {
						return err
					}
				}
			}
		}
		color[name] = black
		return nil
	}
	for name, u := range unions {
		if color[name] == white {
			if err := visit(name, u); err != nil {
				return err
			}
		}
	}
	return nil
}
