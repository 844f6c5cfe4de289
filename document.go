package graphql

import (
	gqerrors "github.com/arcweave/graphql/errors"
)

// Location aliases the shared error-location type so every AST node can
// report where it started in the source document.
type Location = gqerrors.Location

// Literal is a parsed input value: one of IntValue, FloatValue,
// StringValue, BoolValue, NullValue, EnumLiteral, ListLiteral,
// ObjectLiteral, or VariableRef (spec.md §3 "literal values").
type Literal interface {
	literalKind() string
	location() Location
}

type IntValue struct {
	Value int64
	Loc   Location
}

func (v *IntValue) literalKind() string  { return "Int" }
func (v *IntValue) location() Location   { return v.Loc }

type FloatValue struct {
	Value float64
	Loc   Location
}

func (v *FloatValue) literalKind() string { return "Float" }
func (v *FloatValue) location() Location  { return v.Loc }

type StringValue struct {
	Value string
	Loc   Location
}

func (v *StringValue) literalKind() string { return "String" }
func (v *StringValue) location() Location  { return v.Loc }

type BoolValue struct {
	Value bool
	Loc   Location
}

func (v *BoolValue) literalKind() string { return "Boolean" }
func (v *BoolValue) location() Location  { return v.Loc }

type NullValue struct {
	Loc Location
}

func (v *NullValue) literalKind() string { return "Null" }
func (v *NullValue) location() Location  { return v.Loc }

// EnumLiteral is a bare identifier in input-value position that is neither
// `true`, `false`, nor `null`; its meaning (enum constant) is resolved
// against the expected type during variable/argument coercion.
type EnumLiteral struct {
	Name string
	Loc  Location
}

func (v *EnumLiteral) literalKind() string { return "Enum" }
func (v *EnumLiteral) location() Location  { return v.Loc }

type ListLiteral struct {
	Values []Literal
	Loc    Location
}

func (v *ListLiteral) literalKind() string { return "List" }
func (v *ListLiteral) location() Location  { return v.Loc }

type ObjectLiteral struct {
	Fields     map[string]Literal
	FieldOrder []string
	Loc        Location
}

func (v *ObjectLiteral) literalKind() string { return "Object" }
func (v *ObjectLiteral) location() Location  { return v.Loc }

// VariableRef is a `$name` reference appearing in argument/input-value
// position within an operation's selections.
type VariableRef struct {
	Name string
	Loc  Location
}

func (v *VariableRef) literalKind() string { return "Variable" }
func (v *VariableRef) location() Location  { return v.Loc }

// OperationType distinguishes query/mutation/subscription root operations.
type OperationType string

const (
	OperationQuery        OperationType = "query"
	OperationMutation     OperationType = "mutation"
	OperationSubscription OperationType = "subscription"
)

// VariableDefinition is one `$name: Type = default` entry in an operation's
// variable list.
type VariableDefinition struct {
	Name       string
	TypeRef    string
	Default    Literal
	HasDefault bool
	Loc        Location
}

// DirectiveApplication is one `@name(args...)` usage site.
type DirectiveApplication struct {
	Name     string
	Args     map[string]Literal
	ArgOrder []string
	Loc      Location
}

// Selection is the tagged variant named in spec.md §3: FieldQuery,
// FragmentSpreadRef, or InlineFragment.
type Selection interface {
	isSelection()
	location() Location
}

// FieldQuery is one `alias: name(args) { ... }` selection.
type FieldQuery struct {
	Alias        string
	Name         string
	Args         map[string]Literal
	ArgOrder     []string
	Directives   []*DirectiveApplication
	SelectionSet *SelectionSet
	Loc          Location
}

// ResponseKey is the key this selection contributes to the response map:
// the alias if present, otherwise the field name.
func (f *FieldQuery) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

func (*FieldQuery) isSelection()        {}
func (f *FieldQuery) location() Location { return f.Loc }

// FragmentSpreadRef is a `...Name` selection referencing a named fragment.
type FragmentSpreadRef struct {
	Name       string
	Directives []*DirectiveApplication
	Loc        Location
}

func (*FragmentSpreadRef) isSelection()        {}
func (f *FragmentSpreadRef) location() Location { return f.Loc }

// InlineFragment is a `... on Type { ... }` or bare `... { ... }` selection.
type InlineFragment struct {
	TypeCondition string
	Directives    []*DirectiveApplication
	SelectionSet  *SelectionSet
	Loc           Location
}

func (*InlineFragment) isSelection()        {}
func (f *InlineFragment) location() Location { return f.Loc }

// SelectionSet is an ordered `{ ... }` block.
type SelectionSet struct {
	Selections []Selection
	Loc        Location
}

// Fragment is a top-level `fragment Name on Type { ... }` definition.
type Fragment struct {
	Name          string
	TypeCondition string
	Directives    []*DirectiveApplication
	SelectionSet  *SelectionSet
	Loc           Location
}

// Operation is one top-level `query`/`mutation`/`subscription` definition.
// An anonymous operation is stored under the empty name.
type Operation struct {
	Name         string
	Type         OperationType
	Variables    []*VariableDefinition
	Directives   []*DirectiveApplication
	SelectionSet *SelectionSet
	Loc          Location
}

// Document is a fully parsed and validated request document (spec.md §3
// "Document"): every fragment reference resolved, every fragment-condition
// checked, no fragment cycles, and selection sets merged. It is safe to
// execute against any schema compatible with the one it was parsed against,
// and safe to cache and re-execute with different variables.
type Document struct {
	Operations     map[string]*Operation
	OperationOrder []string
	Fragments      map[string]*Fragment
}
