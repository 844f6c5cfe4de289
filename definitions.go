package graphql

import (
	"context"
	"regexp"
)

// identifierRegexp is the identifier grammar shared by every GraphQL name
// in the schema and in documents (spec.md §3 Invariants).
var identifierRegexp = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// IsValidIdentifier reports whether name matches the GraphQL identifier
// grammar.
func IsValidIdentifier(name string) bool {
	return identifierRegexp.MatchString(name)
}

// FieldDescriptor is the output-field/argument metadata shared by Object
// and Interface fields (spec.md §3).
type FieldDescriptor struct {
	Name              string
	FieldType         Type
	Args              map[string]Type
	argOrder          []string
	Description       string
	Deprecated        bool
	DeprecationReason string
}

// ArgOrder returns argument names in declaration order.
func (d *FieldDescriptor) ArgOrder() []string { return d.argOrder }

// FieldResolve is the resolver function signature shared by every Field,
// directive implementation, and the executor's resolve chain.
type FieldResolve func(ctx context.Context, source, args interface{}) (interface{}, error)

// Resolver is the tagged resolver-kind variant named in spec.md §3:
// Attr(name) or Method{name, partial_args, partial_kwargs, context_args}.
type Resolver interface {
	isResolver()
	// Bind returns the FieldResolve closure the executor invokes.
	Bind() FieldResolve
}

// AttrResolver reads a named attribute off the holding value via
// reflection (spec.md §3 Field "Attr(name)").
type AttrResolver struct {
	AttrName string
}

func Attr(name string) *AttrResolver { return &AttrResolver{AttrName: name} }

func (*AttrResolver) isResolver() {}

func (r *AttrResolver) Bind() FieldResolve {
	return func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return readAttr(source, r.AttrName)
	}
}

// MethodResolver wraps a Go function value with partially-applied
// positional/keyword arguments and a declared set of context-argument
// names (spec.md §3 Field "Method{name, partial_args, partial_kwargs,
// context_args}"). PartialKwArgs fill in argument-map keys the query does
// not supply; PartialArgs are stored but are not passed to Fn.
type MethodResolver struct {
	MethodName    string
	Fn            FieldResolve
	PartialArgs   []interface{}
	PartialKwArgs map[string]interface{}
	ContextArgs   map[string]bool
}

// Method builds a MethodResolver around fn with the given options.
func Method(name string, fn FieldResolve, opts ...MethodOption) *MethodResolver {
	m := &MethodResolver{MethodName: name, Fn: fn, PartialKwArgs: map[string]interface{}{}, ContextArgs: map[string]bool{}}
	for _, o := range opts {
		o(m)
	}
	return m
}

type MethodOption func(*MethodResolver)

func PartialArgs(args ...interface{}) MethodOption {
	return func(m *MethodResolver) { m.PartialArgs = append(m.PartialArgs, args...) }
}

func PartialKwArg(name string, value interface{}) MethodOption {
	return func(m *MethodResolver) { m.PartialKwArgs[name] = value }
}

func WithContextArg(name string) MethodOption {
	return func(m *MethodResolver) { m.ContextArgs[name] = true }
}

func (*MethodResolver) isResolver() {}

func (r *MethodResolver) Bind() FieldResolve { return r.Fn }

// Field is a FieldDescriptor plus the resolver used to compute its value.
type Field struct {
	FieldDescriptor
	Resolver Resolver
}

// DirectiveLocation is a syntactic position a directive may be applied.
type DirectiveLocation string

const (
	LocationQuery              DirectiveLocation = "QUERY"
	LocationMutation           DirectiveLocation = "MUTATION"
	LocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocationField              DirectiveLocation = "FIELD"
	LocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocationFieldDefinition    DirectiveLocation = "FIELD_DEFINITION"
	LocationEnumValue          DirectiveLocation = "ENUM_VALUE"
)

// DirectiveType is the schema-level declaration of a directive (spec.md
// §3 "DirectiveType").
type DirectiveType struct {
	Name        string
	Args        map[string]Type
	argOrder    []string
	Locations   map[DirectiveLocation]bool
	Description string
}

func (d *DirectiveType) ArgOrder() []string { return d.argOrder }

func (d *DirectiveType) AllowsLocation(loc DirectiveLocation) bool {
	return d.Locations[loc]
}
