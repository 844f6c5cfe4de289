package graphql

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"
)

// nameValidator is a process-wide validator.Validate instance used by
// validateName to check declared type names against the GraphQL name
// grammar during Build (spec.md §3 Invariants: "Every identifier matches
// [_A-Za-z][_0-9A-Za-z]*"). Enum value names are checked against the same
// grammar by NewEnum; field, argument, input-field and directive names
// are not checked. This mirrors the teacher's own singleton-validator
// pattern in schemabuilder/validator.go.
var nameValidator = validator.New()

func init() {
	_ = nameValidator.RegisterValidation("graphqlname", func(fl validator.FieldLevel) bool {
		return identifierRegexp.MatchString(fl.Field().String())
	})
}

func validateName(kind, name string) error {
	type holder struct {
		Name string `validate:"required,graphqlname"`
	}
	if err := nameValidator.Struct(holder{Name: name}); err != nil {
		return fmt.Errorf("graphql: invalid %s name %q: identifiers must match [_A-Za-z][_0-9A-Za-z]*", kind, name)
	}
	return nil
}

// Schema is the immutable, built type graph: the registry described in
// spec.md §4.1. Construct one with NewSchemaBuilder and Build.
type Schema struct {
	types      map[string]NamedType
	directives map[string]*DirectiveType

	Query    *Object
	Mutation *Object

	commonFields       map[string]*FieldDescriptor
	implicitRootFields map[string]*FieldDescriptor

	classTags map[reflect.Type]*Object

	docCache *documentCache
}

// defaultDocumentCacheSize bounds the number of distinct document strings
// a Schema will keep pre-parsed at once.
const defaultDocumentCacheSize = 1000

// VERSION is the schema JSON wire-format version (spec.md §4.1
// Serialization). A consumer decoding a schema JSON blob with a different
// VERSION must reject it outright.
const VERSION = 1

// Type looks up a declared named type by its bare name (no wrappers).
func (s *Schema) Type(name string) (NamedType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Types returns every declared named type, for introspection's
// `__Schema.types`.
func (s *Schema) Types() []NamedType {
	out := make([]NamedType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName() < out[j].TypeName() })
	return out
}

// Directive looks up a declared directive by name.
func (s *Schema) Directive(name string) (*DirectiveType, bool) {
	d, ok := s.directives[name]
	return d, ok
}

// Directives returns every declared directive, sorted by name.
func (s *Schema) Directives() []*DirectiveType {
	out := make([]*DirectiveType, 0, len(s.directives))
	for _, d := range s.directives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CommonField looks up one of the fields attached to every Object
// regardless of declaration (currently just __typename).
func (s *Schema) CommonField(name string) (*FieldDescriptor, bool) {
	d, ok := s.commonFields[name]
	return d, ok
}

// ImplicitRootField looks up one of the fields implicitly attached to the
// root query type (__schema, __type).
func (s *Schema) ImplicitRootField(name string) (*FieldDescriptor, bool) {
	d, ok := s.implicitRootFields[name]
	return d, ok
}

// ObjectTypeOf recovers the Object type of a runtime resolver value by
// walking its dynamic type and then its embedded-struct surfaces, per
// spec.md §9's class-tag abstraction. It returns nil for scalars, enums,
// lists, maps, and nil values, exactly as spec.md §4.1 requires.
func (s *Schema) ObjectTypeOf(value interface{}) *Object {
	if value == nil {
		return nil
	}
	rt := reflect.TypeOf(value)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}
	for _, surface := range surfacesOf(rt) {
		if obj, ok := s.classTags[surface]; ok {
			return obj
		}
	}
	return nil
}

// IsSubtype reports whether a is the same type as b, or reaches b by
// following parent links (spec.md §3 "is_subtype(A,B) holds iff there is
// a path A→…→B via parent links (reflexive)").
func (s *Schema) IsSubtype(a, b NamedType) bool {
	if a == nil || b == nil {
		return false
	}
	if a.TypeName() == b.TypeName() {
		return true
	}
	var parents []NamedType
	switch t := a.(type) {
	case *Object:
		parents = t.Parents
	case *Interface:
		parents = t.Parents
	}
	for _, p := range parents {
		if s.IsSubtype(p, b) {
			return true
		}
	}
	// A union's members are its children: a is a subtype of the union b
	// when it is a subtype of one of b's members.
	if u, ok := b.(*Union); ok {
		for _, m := range u.Members {
			if s.IsSubtype(a, m) {
				return true
			}
		}
	}
	return false
}

// objectLeaves returns the Object descendant set of t: for an Object,
// just {t}; for an Interface/Union, every Object that is a subtype of t.
func (s *Schema) objectLeaves(t NamedType) map[string]*Object {
	if obj, ok := t.(*Object); ok {
		return map[string]*Object{obj.Name: obj}
	}
	out := map[string]*Object{}
	for _, named := range s.types {
		if obj, ok := named.(*Object); ok && s.IsSubtype(obj, t) {
			out[obj.Name] = obj
		}
	}
	return out
}

// Intersects reports whether a and b share at least one Object
// descendant (spec.md §3 "intersects(A,B)"), used for fragment
// applicability validation.
func (s *Schema) Intersects(a, b NamedType) bool {
	if oa, ok := a.(*Object); ok {
		if ob, ok := b.(*Object); ok {
			return oa.Name == ob.Name
		}
		return s.IsSubtype(oa, b)
	}
	if ob, ok := b.(*Object); ok {
		return s.IsSubtype(ob, a)
	}
	la, lb := s.objectLeaves(a), s.objectLeaves(b)
	for name := range la {
		if _, ok := lb[name]; ok {
			return true
		}
	}
	return false
}

// PossibleTypes returns the Object leaves of an Interface or Union, sorted
// by name, for introspection's `possibleTypes` field.
func (s *Schema) PossibleTypes(t NamedType) []*Object {
	leaves := s.objectLeaves(t)
	out := make([]*Object, 0, len(leaves))
	for _, o := range leaves {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AncestorInterfaces returns the transitive interface ancestors of an
// Object, used by introspection's `__Type.interfaces`.
func (s *Schema) AncestorInterfaces(o *Object) []*Interface {
	seen := map[string]*Interface{}
	var walk func(parents []NamedType)
	walk = func(parents []NamedType) {
		for _, p := range parents {
			if iface, ok := p.(*Interface); ok {
				if _, dup := seen[iface.Name]; dup {
					continue
				}
				seen[iface.Name] = iface
				walk(iface.Parents)
			}
		}
	}
	walk(o.Parents)
	out := make([]*Interface, 0, len(seen))
	for _, i := range seen {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetType resolves a type reference string such as "[Foo!]!" against the
// schema, per spec.md §4.1's GetType parser rules.
func (s *Schema) GetType(ref string, requireInput, requireOutput bool) (Type, error) {
	t, base, err := s.parseTypeRef(ref)
	if err != nil {
		return nil, err
	}
	if requireInput {
		switch base.(type) {
		case *Enum, *Scalar, *InputObject:
		default:
			return nil, fmt.Errorf("graphql: %q is not a valid input type", ref)
		}
	}
	if requireOutput {
		if _, ok := base.(*InputObject); ok {
			return nil, fmt.Errorf("graphql: %q is not a valid output type", ref)
		}
	}
	return t, nil
}

func (s *Schema) parseTypeRef(ref string) (Type, NamedType, error) {
	if ref == "" {
		return nil, nil, fmt.Errorf("graphql: empty type reference")
	}
	if ref[len(ref)-1] == '!' {
		if len(ref) >= 2 && ref[len(ref)-2] == '!' {
			return nil, nil, fmt.Errorf("graphql: doubled ! in type reference %q", ref)
		}
		inner, base, err := s.parseTypeRef(ref[:len(ref)-1])
		if err != nil {
			return nil, nil, err
		}
		return NewNonNull(inner), base, nil
	}
	if ref[0] == '[' {
		if ref[len(ref)-1] != ']' {
			return nil, nil, fmt.Errorf("graphql: unmatched [ in type reference %q", ref)
		}
		inner, base, err := s.parseTypeRef(ref[1 : len(ref)-1])
		if err != nil {
			return nil, nil, err
		}
		return &List{Of: inner}, base, nil
	}
	if ref[0] == ']' {
		return nil, nil, fmt.Errorf("graphql: unmatched ] in type reference %q", ref)
	}
	if !identifierRegexp.MatchString(ref) {
		return nil, nil, fmt.Errorf("graphql: invalid base type name %q", ref)
	}
	named, ok := s.types[ref]
	if !ok {
		return nil, nil, fmt.Errorf("graphql: unknown type %q", ref)
	}
	return named, named, nil
}
