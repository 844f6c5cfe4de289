package graphql

import (
	"context"
	"fmt"
	"reflect"

	gqerrors "github.com/arcweave/graphql/errors"
)

type execCtx struct {
	ctx    context.Context
	schema *Schema
	hooks  Hooks
	doc    *Document
	vars   map[string]interface{}
	errs   []*gqerrors.GraphQLError
}

func (ec *execCtx) addError(loc Location, path []interface{}, format string, args ...interface{}) {
	ec.errs = append(ec.errs, &gqerrors.GraphQLError{
		Message:   fmt.Sprintf(format, args...),
		Locations: []gqerrors.Location{{Line: loc.Line, Column: loc.Column}},
		Path:      path,
		Kind:      gqerrors.KindFieldType,
	})
}

func (ec *execCtx) addResolverError(loc Location, path []interface{}, err error) {
	if records := hookExceptionRecords(ec, err); records != nil {
		for _, r := range records {
			r.Path = path
			ec.errs = append(ec.errs, r)
		}
		return
	}
	ec.errs = append(ec.errs, &gqerrors.GraphQLError{
		Message:       "resolver error",
		Locations:     []gqerrors.Location{{Line: loc.Line, Column: loc.Column}},
		Path:          path,
		Kind:          gqerrors.KindResolver,
		ResolverError: err,
	})
}

func hookExceptionRecords(ec *execCtx, err error) []*gqerrors.GraphQLError {
	if ec.hooks == nil {
		return nil
	}
	return ec.hooks.ExceptionErrors(ec.ctx, err)
}

// ctxArgKey is the context.Value key type used to thread Hooks.ContextArg
// results into a MethodResolver's FieldResolve, per spec.md §3's
// `context_args` field descriptor.
type ctxArgKey string

// ContextArgValue retrieves a value previously injected for a Method
// resolver's declared context argument name.
func ContextArgValue(ctx context.Context, name string) (interface{}, bool) {
	v := ctx.Value(ctxArgKey(name))
	return v, v != nil
}

type fieldGroup struct {
	key    string
	fields []*FieldQuery
}

// collectFields groups the selections of ss applicable to the concrete
// objType into response-key-ordered groups, inlining fragment spreads and
// inline fragments and applying @skip/@include (spec.md §7 "collect
// fields").
func (ec *execCtx) collectFields(ss *SelectionSet, objType *Object) ([]fieldGroup, error) {
	order := []string{}
	groups := map[string][]*FieldQuery{}
	var walk func(ss *SelectionSet, visitedFragments map[string]bool) error
	walk = func(ss *SelectionSet, visitedFragments map[string]bool) error {
		for _, sel := range ss.Selections {
			switch s := sel.(type) {
			case *FieldQuery:
				include, err := ec.evalSkipInclude(s.Directives)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				key := s.ResponseKey()
				if _, ok := groups[key]; !ok {
					order = append(order, key)
				}
				groups[key] = append(groups[key], s)
			case *InlineFragment:
				include, err := ec.evalSkipInclude(s.Directives)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				if s.TypeCondition != "" {
					cond, ok := ec.schema.Type(s.TypeCondition)
					if !ok || !ec.schema.IsSubtype(objType, cond) {
						continue
					}
				}
				if err := walk(s.SelectionSet, visitedFragments); err != nil {
					return err
				}
			case *FragmentSpreadRef:
				include, err := ec.evalSkipInclude(s.Directives)
				if err != nil {
					return err
				}
				if !include || visitedFragments[s.Name] {
					continue
				}
				frag, ok := ec.doc.Fragments[s.Name]
				if !ok {
					return fmt.Errorf("undefined fragment %q", s.Name)
				}
				cond, ok := ec.schema.Type(frag.TypeCondition)
				if !ok || !ec.schema.IsSubtype(objType, cond) {
					continue
				}
				visitedFragments[s.Name] = true
				err2 := walk(frag.SelectionSet, visitedFragments)
				delete(visitedFragments, s.Name)
				if err2 != nil {
					return err2
				}
			}
		}
		return nil
	}
	if err := walk(ss, map[string]bool{}); err != nil {
		return nil, err
	}
	out := make([]fieldGroup, 0, len(order))
	for _, key := range order {
		out = append(out, fieldGroup{key: key, fields: groups[key]})
	}
	return out, nil
}

func (ec *execCtx) evalSkipInclude(directives []*DirectiveApplication) (bool, error) {
	include := true
	for _, app := range directives {
		switch app.Name {
		case "skip":
			v, err := ec.evalBoolArg(app)
			if err != nil {
				return false, err
			}
			if v {
				include = false
			}
		case "include":
			v, err := ec.evalBoolArg(app)
			if err != nil {
				return false, err
			}
			if !v {
				include = false
			}
		}
	}
	return include, nil
}

func (ec *execCtx) evalBoolArg(app *DirectiveApplication) (bool, error) {
	boolType := ec.schema.scalarMust("Boolean")
	val, err := ec.literalToValue(app.Args["if"], NewNonNull(boolType))
	if err != nil {
		return false, err
	}
	b, _ := val.(bool)
	return b, nil
}

// literalToValue resolves a parsed Literal to an internal value, following
// $variable references into ec.vars (already externally coerced).
func (ec *execCtx) literalToValue(lit Literal, t Type) (interface{}, error) {
	if lit == nil {
		return nil, nil
	}
	if ref, ok := lit.(*VariableRef); ok {
		return ec.vars[ref.Name], nil
	}
	if _, ok := lit.(*NullValue); ok {
		return nil, nil
	}
	if nn, ok := t.(*NonNull); ok {
		return ec.literalToValue(lit, nn.Of)
	}
	if lst, ok := t.(*List); ok {
		if list, ok := lit.(*ListLiteral); ok {
			out := make([]interface{}, len(list.Values))
			for i, v := range list.Values {
				cv, err := ec.literalToValue(v, lst.Of)
				if err != nil {
					return nil, err
				}
				out[i] = cv
			}
			return out, nil
		}
		single, err := ec.literalToValue(lit, lst.Of)
		if err != nil {
			return nil, err
		}
		return []interface{}{single}, nil
	}
	switch named := t.(type) {
	case *Scalar:
		return named.Impl.CoerceLiteral(lit)
	case *Enum:
		el, ok := lit.(*EnumLiteral)
		if !ok {
			return nil, fmt.Errorf("expected enum constant for %s", named.Name)
		}
		v, ok := named.ValueFor(el.Name)
		if !ok {
			return nil, fmt.Errorf("%s is not a member of enum %s", el.Name, named.Name)
		}
		return v, nil
	case *InputObject:
		obj, ok := lit.(*ObjectLiteral)
		if !ok {
			return nil, fmt.Errorf("expected input object for %s", named.Name)
		}
		out := map[string]interface{}{}
		for fname, ftype := range named.Fields {
			v, err := ec.literalToValue(obj.Fields[fname], ftype)
			if err != nil {
				return nil, err
			}
			out[fname] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is not a valid input type", t)
	}
}

// coerceInputValue coerces an already JSON-decoded external value
// (map[string]interface{}/[]interface{}/string/float64/bool/nil) to its
// internal form, for operation-variable coercion (spec.md §7 "coerce
// variables").
func coerceInputValue(value interface{}, t Type) (interface{}, error) {
	if nn, ok := t.(*NonNull); ok {
		if value == nil {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceInputValue(value, nn.Of)
	}
	if value == nil {
		return nil, nil
	}
	if lst, ok := t.(*List); ok {
		if arr, ok := value.([]interface{}); ok {
			out := make([]interface{}, len(arr))
			for i, v := range arr {
				cv, err := coerceInputValue(v, lst.Of)
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", i, err)
				}
				out[i] = cv
			}
			return out, nil
		}
		single, err := coerceInputValue(value, lst.Of)
		if err != nil {
			return nil, err
		}
		return []interface{}{single}, nil
	}
	switch named := t.(type) {
	case *Scalar:
		return named.Impl.CoerceInput(value)
	case *Enum:
		name, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("enum %s expects a string constant", named.Name)
		}
		v, ok := named.ValueFor(name)
		if !ok {
			return nil, fmt.Errorf("%s is not a member of enum %s", name, named.Name)
		}
		return v, nil
	case *InputObject:
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("input object %s expects an object", named.Name)
		}
		for k := range m {
			if _, ok := named.Fields[k]; !ok {
				return nil, fmt.Errorf("%s has no input field %q", named.Name, k)
			}
		}
		out := map[string]interface{}{}
		for fname, ftype := range named.Fields {
			raw, given := m[fname]
			if !given {
				if IsNonNull(ftype) {
					return nil, fmt.Errorf("%s.%s is required", named.Name, fname)
				}
				continue
			}
			cv, err := coerceInputValue(raw, ftype)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", named.Name, fname, err)
			}
			out[fname] = cv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is not a valid input type", t)
	}
}

// coerceVariables computes the internal variables map for one operation
// (spec.md §7 preparation step).
func coerceVariables(op *Operation, schema *Schema, external map[string]interface{}) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for _, vd := range op.Variables {
		t, err := schema.GetType(vd.TypeRef, true, false)
		if err != nil {
			return nil, err
		}
		raw, given := external[vd.Name]
		switch {
		case given:
			cv, err := coerceInputValue(raw, t)
			if err != nil {
				return nil, gqerrors.NewAt(gqerrors.KindVariables, vd.Loc.Line, vd.Loc.Column, "$%s: %s", vd.Name, err)
			}
			out[vd.Name] = cv
		case vd.HasDefault:
			ec := &execCtx{vars: map[string]interface{}{}}
			cv, err := ec.literalToValue(vd.Default, t)
			if err != nil {
				return nil, gqerrors.NewAt(gqerrors.KindVariables, vd.Loc.Line, vd.Loc.Column, "$%s default value: %s", vd.Name, err)
			}
			out[vd.Name] = cv
		case IsNonNull(t):
			return nil, gqerrors.NewAt(gqerrors.KindVariables, vd.Loc.Line, vd.Loc.Column, "missing required variable $%s", vd.Name)
		default:
			out[vd.Name] = nil
		}
	}
	return out, nil
}

func (ec *execCtx) coerceFieldArgs(fq *FieldQuery, argTypes map[string]Type) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for name, t := range argTypes {
		lit, given := fq.Args[name]
		if !given {
			if IsNonNull(t) {
				return nil, fmt.Errorf("missing required argument %q", name)
			}
			continue
		}
		v, err := ec.literalToValue(lit, t)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

// executeSelectionSetForObject evaluates ss against the concrete Object
// type objType and its resolved source value, returning the response map
// and whether a required subfield's violation must null out this entire
// level (propagating to the caller).
func (ec *execCtx) executeSelectionSetForObject(ctx context.Context, ss *SelectionSet, objType *Object, source interface{}, path []interface{}, isMutationRoot bool) (map[string]interface{}, bool) {
	groups, err := ec.collectFields(ss, objType)
	if err != nil {
		ec.addError(ss.Loc, path, "%s", err)
		return nil, false
	}
	result := map[string]interface{}{}
	for _, g := range groups {
		fieldPath := append(append([]interface{}{}, path...), g.key)
		value, violation := ec.executeOneField(ctx, g, objType, source, fieldPath, isMutationRoot)
		if violation {
			return nil, true
		}
		result[g.key] = value
	}
	return result, false
}

func (ec *execCtx) executeOneField(ctx context.Context, g fieldGroup, objType *Object, source interface{}, path []interface{}, isMutationRoot bool) (interface{}, bool) {
	rep := g.fields[0]
	loc := rep.Loc

	if rep.Name == "__typename" {
		return objType.Name, false
	}

	var fieldType Type
	var resolver Resolver
	var argTypes map[string]Type

	if fd, ok := objType.Fields[rep.Name]; ok {
		fieldType = fd.FieldType
		resolver = fd.Resolver
		argTypes = fd.Args
	} else if (rep.Name == "__schema" || rep.Name == "__type") && objType == ec.schema.Query {
		fd, _ := ec.schema.ImplicitRootField(rep.Name)
		fieldType = fd.FieldType
		argTypes = fd.Args
		resolver = funcResolver(ec.implicitRootResolve(rep.Name))
	} else {
		ec.addError(loc, path, "field %q does not exist on type %q", rep.Name, objType.Name)
		return nil, IsNonNullAny(objType, rep.Name)
	}

	args, err := ec.coerceFieldArgs(rep, argTypes)
	if err != nil {
		completed, violation := ec.completeValue(fieldType, nil, err, nil, path, loc)
		_ = completed
		return nil, violation
	}

	mergedSub := mergeSubSelections(g.fields)

	if isMutationRoot {
		ec.hooks.MutationStart(ctx, rep.Name, args)
	}
	var resolved interface{}
	var resolveErr error
	if resolver == nil {
		resolved, resolveErr = readAttr(source, rep.Name)
	} else {
		resolved, resolveErr = ec.invokeResolver(ctx, resolver, source, args)
	}
	if isMutationRoot {
		ec.hooks.MutationEnd(ctx, rep.Name, args, resolved, resolveErr)
	}
	completed, violation := ec.completeValue(fieldType, resolved, resolveErr, mergedSub, path, loc)
	return completed, violation
}

// IsNonNullAny reports whether the named field on a concrete object type is
// NonNull, used to decide whether an unknown-field error must null out the
// enclosing selection set. Returns false for unknown fields (conservative:
// never propagate past an already-erroring lookup).
func IsNonNullAny(objType *Object, name string) bool {
	if fd, ok := objType.Fields[name]; ok {
		return IsNonNull(fd.FieldType)
	}
	return false
}

func mergeSubSelections(fields []*FieldQuery) *SelectionSet {
	var merged *SelectionSet
	for _, f := range fields {
		if f.SelectionSet == nil {
			continue
		}
		if merged == nil {
			merged = &SelectionSet{Loc: f.SelectionSet.Loc}
		}
		merged.Selections = append(merged.Selections, f.SelectionSet.Selections...)
	}
	return merged
}

func (ec *execCtx) invokeResolver(ctx context.Context, resolver Resolver, source, args interface{}) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("panic in resolver: %v", r)
			}
		}
	}()
	if mr, ok := resolver.(*MethodResolver); ok {
		for name := range mr.ContextArgs {
			v, cerr := ec.hooks.ContextArg(ctx, name)
			if cerr != nil {
				return nil, cerr
			}
			ctx = context.WithValue(ctx, ctxArgKey(name), v)
		}
		if argMap, ok := args.(map[string]interface{}); ok {
			for k, v := range mr.PartialKwArgs {
				if _, exists := argMap[k]; !exists {
					argMap[k] = v
				}
			}
		}
	}
	return resolver.Bind()(ctx, source, args)
}

func (ec *execCtx) implicitRootResolve(name string) FieldResolve {
	return func(_ context.Context, _, args interface{}) (interface{}, error) {
		switch name {
		case "__schema":
			return ec.schema, nil
		case "__type":
			m, _ := args.(map[string]interface{})
			typeName, _ := m["name"].(string)
			t, ok := ec.schema.Type(typeName)
			if !ok {
				return nil, nil
			}
			return &introspectionType{named: t}, nil
		}
		return nil, nil
	}
}

// completeValue implements spec.md §7's output coercion and NonNull
// propagation discipline: returns (value, violation) where violation
// signals that a NonNull constraint failed at or below this position and
// the nearest nullable ancestor must absorb it as null.
func (ec *execCtx) completeValue(t Type, value interface{}, resolveErr error, subSel *SelectionSet, path []interface{}, loc Location) (interface{}, bool) {
	if nn, ok := t.(*NonNull); ok {
		inner, violation := ec.completeValue(nn.Of, value, resolveErr, subSel, path, loc)
		if violation {
			return nil, true
		}
		if inner == nil {
			ec.addError(loc, path, "Cannot return null for non-nullable field")
			return nil, true
		}
		return inner, false
	}
	if resolveErr != nil {
		ec.addResolverError(loc, path, resolveErr)
		return nil, false
	}
	if value == nil {
		return nil, false
	}
	switch bt := t.(type) {
	case *List:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			ec.addError(loc, path, "resolved value is not a list")
			return nil, false
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			itemPath := append(append([]interface{}{}, path...), i)
			completed, violation := ec.completeValue(bt.Of, rv.Index(i).Interface(), nil, subSel, itemPath, loc)
			if violation {
				return nil, true
			}
			out[i] = completed
		}
		return out, false
	case *Scalar:
		out, err := bt.Impl.CoerceOutput(value)
		if err != nil {
			ec.errs = append(ec.errs, &gqerrors.GraphQLError{
				Message:   fmt.Sprintf("BadScalarError: %s", err),
				Locations: []gqerrors.Location{{Line: loc.Line, Column: loc.Column}},
				Path:      path,
				Kind:      gqerrors.KindBadScalar,
			})
			return nil, false
		}
		return out, false
	case *Enum:
		name, ok := bt.NameFor(value)
		if !ok {
			ec.addError(loc, path, "value %v is not a member of enum %s", value, bt.Name)
			return nil, false
		}
		return name, false
	case *Object:
		return ec.executeSelectionSetForObject(ec.ctx, subSel, bt, value, path, false)
	case *Interface, *Union:
		concrete := ec.schema.ObjectTypeOf(value)
		if concrete == nil {
			ec.addError(loc, path, "abstract type %s did not resolve to an object value", bt.(NamedType).TypeName())
			return nil, false
		}
		return ec.executeSelectionSetForObject(ec.ctx, subSel, concrete, value, path, false)
	default:
		return value, false
	}
}
