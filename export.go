package graphql

import (
	"encoding/json"
	"sort"

	"github.com/golang/protobuf/ptypes/any"
)

// exportedSchema is the stable wire form of a Schema (spec.md §4.1
// Serialization). VERSION-gated: a consumer decoding an exportedSchema
// with a different Version must reject it.
type exportedSchema struct {
	Version int              `json:"version"`
	Types   []*exportedType  `json:"types"`
	Query   string           `json:"queryType,omitempty"`
	Mutation string          `json:"mutationType,omitempty"`
}

type exportedType struct {
	Kind        string            `json:"kind"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Fields      []*exportedField  `json:"fields,omitempty"`
	EnumValues  []string          `json:"enumValues,omitempty"`
}

// exportedField carries the field's GraphQL type signature plus an
// opaque resolver-location descriptor. The descriptor is wrapped in a
// *any.Any so the wire format has room for vendor-specific resolver
// metadata (method name, partial-argument shape, …) without that
// metadata ever needing to appear in the Version-gated struct itself,
// the same way the teacher's federation/translate.go wraps opaque
// response payloads for cross-process transport.
type exportedField struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Resolver   *any.Any  `json:"resolver,omitempty"`
}

type resolverDescriptor struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

func describeResolver(r Resolver) *resolverDescriptor {
	switch v := r.(type) {
	case *AttrResolver:
		return &resolverDescriptor{Kind: "attr", Name: v.AttrName}
	case *MethodResolver:
		return &resolverDescriptor{Kind: "method", Name: v.MethodName}
	default:
		return nil
	}
}

func wrapResolver(r Resolver) *any.Any {
	d := describeResolver(r)
	if d == nil {
		return nil
	}
	body, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	return &any.Any{TypeUrl: "type.googleapis.com/graphql.ResolverDescriptor", Value: body}
}

// UnwrapResolverDescriptor recovers the resolverDescriptor an ExportJSON
// call embedded for a field, for tooling that introspects a schema's wire
// form rather than the live Schema value.
func UnwrapResolverDescriptor(a *any.Any) (kind, name string, ok bool) {
	if a == nil {
		return "", "", false
	}
	var d resolverDescriptor
	if err := json.Unmarshal(a.Value, &d); err != nil {
		return "", "", false
	}
	return d.Kind, d.Name, true
}

// ExportJSON renders the schema to its stable JSON wire form (spec.md
// §4.1 Serialization). The result is independent of Go-side resolver
// closures: only resolver *kind* and *name* survive, wrapped as an Any
// so future resolver kinds don't require a VERSION bump.
func (s *Schema) ExportJSON() ([]byte, error) {
	out := &exportedSchema{Version: VERSION}
	if s.Query != nil {
		out.Query = s.Query.Name
	}
	if s.Mutation != nil {
		out.Mutation = s.Mutation.Name
	}
	for _, t := range s.Types() {
		out.Types = append(out.Types, exportType(t))
	}
	return json.Marshal(out)
}

func exportType(t NamedType) *exportedType {
	et := &exportedType{Name: t.TypeName(), Description: t.TypeDescription()}
	switch v := t.(type) {
	case *Scalar:
		et.Kind = "SCALAR"
	case *Enum:
		et.Kind = "ENUM"
		et.EnumValues = append([]string(nil), v.Names()...)
	case *Object:
		et.Kind = "OBJECT"
		for _, name := range v.fieldOrder {
			f := v.Fields[name]
			ef := &exportedField{Name: name, Type: f.FieldType.String()}
			if f.Resolver != nil {
				ef.Resolver = wrapResolver(f.Resolver)
			}
			et.Fields = append(et.Fields, ef)
		}
	case *Interface:
		et.Kind = "INTERFACE"
		for _, name := range v.fieldOrder {
			d := v.FieldDescriptors[name]
			et.Fields = append(et.Fields, &exportedField{Name: name, Type: d.FieldType.String()})
		}
	case *Union:
		et.Kind = "UNION"
		names := make([]string, 0, len(v.Members))
		for _, m := range v.Members {
			names = append(names, m.TypeName())
		}
		sort.Strings(names)
		et.EnumValues = names
	case *InputObject:
		et.Kind = "INPUT_OBJECT"
		for _, name := range v.fieldOrder {
			ft := v.Fields[name]
			et.Fields = append(et.Fields, &exportedField{Name: name, Type: ft.String()})
		}
	}
	return et
}
