package graphql

import (
	"fmt"
	"sort"
	"strings"

	gqerrors "github.com/arcweave/graphql/errors"
)

// parser is the hand-rolled, single-pass recursive-descent reader for
// request documents (spec.md §5). It tokenizes lazily via lexer and
// carries one token of lookahead.
type parser struct {
	lx  *lexer
	tok token
}

func newParser(src string) (*parser, error) {
	p := &parser{lx: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return gqerrors.NewAt(gqerrors.KindParse, p.tok.line, p.tok.column, format, args...)
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.errorf("expected %s", what)
	}
	t := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *parser) expectName() (string, error) {
	if p.tok.kind != tokName {
		return "", p.errorf("expected a name")
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *parser) atName(name string) bool {
	return p.tok.kind == tokName && p.tok.text == name
}

// ParseDocument reads and validates a request document against schema,
// producing a Document safe to execute (spec.md §5, §3 "Document").
func ParseDocument(documentStr string, schema *Schema) (*Document, error) {
	p, err := newParser(documentStr)
	if err != nil {
		return nil, gqlParseErr(err)
	}
	doc := &Document{Operations: map[string]*Operation{}, Fragments: map[string]*Fragment{}}
	for p.tok.kind != tokEOF {
		switch {
		case p.atName("query") || p.atName("mutation") || p.atName("subscription") || p.tok.kind == tokBraceOpen:
			op, err := p.parseOperation()
			if err != nil {
				return nil, gqlParseErr(err)
			}
			if _, dup := doc.Operations[op.Name]; dup {
				if op.Name == "" {
					return nil, gqerrors.NewAt(gqerrors.KindParse, op.Loc.Line, op.Loc.Column, "multiple anonymous operations")
				}
				return nil, gqerrors.NewAt(gqerrors.KindParse, op.Loc.Line, op.Loc.Column, "duplicate operation name %q", op.Name)
			}
			doc.Operations[op.Name] = op
			doc.OperationOrder = append(doc.OperationOrder, op.Name)
		case p.atName("fragment"):
			frag, err := p.parseFragmentDefinition()
			if err != nil {
				return nil, gqlParseErr(err)
			}
			if _, dup := doc.Fragments[frag.Name]; dup {
				return nil, gqerrors.NewAt(gqerrors.KindParse, frag.Loc.Line, frag.Loc.Column, "duplicate fragment name %q", frag.Name)
			}
			doc.Fragments[frag.Name] = frag
		default:
			return nil, gqlParseErr(p.errorf("expected an operation or fragment definition"))
		}
	}
	if len(doc.Operations) == 0 {
		return nil, gqerrors.New(gqerrors.KindParse, "document contains no operations")
	}
	if schema != nil {
		if err := validateDocument(doc, schema); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// gqlParseErr ensures a parse-time failure is carried as a *GraphQLError
// with Kind ParseError, preserving any location it already carries.
func gqlParseErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*gqerrors.GraphQLError); ok {
		return err
	}
	return gqerrors.New(gqerrors.KindParse, "%s", err.Error())
}

func (p *parser) parseOperation() (*Operation, error) {
	loc := p.lx.loc()
	opType := OperationQuery
	hasKeyword := false
	if p.tok.kind == tokName {
		switch p.tok.text {
		case "query":
			opType = OperationQuery
			hasKeyword = true
		case "mutation":
			opType = OperationMutation
			hasKeyword = true
		case "subscription":
			opType = OperationSubscription
			hasKeyword = true
		}
	}
	var name string
	var varDefs []*VariableDefinition
	var directives []*DirectiveApplication
	if hasKeyword {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokName {
			n, err := p.expectName()
			if err != nil {
				return nil, err
			}
			name = n
		}
		if p.tok.kind == tokParenOpen {
			vd, err := p.parseVariableDefinitions()
			if err != nil {
				return nil, err
			}
			varDefs = vd
		}
		d, err := p.parseDirectives()
		if err != nil {
			return nil, err
		}
		directives = d
	}
	ss, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &Operation{Name: name, Type: opType, Variables: varDefs, Directives: directives, SelectionSet: ss, Loc: loc}, nil
}

func (p *parser) parseVariableDefinitions() ([]*VariableDefinition, error) {
	if _, err := p.expect(tokParenOpen, "("); err != nil {
		return nil, err
	}
	var out []*VariableDefinition
	for p.tok.kind != tokParenClose {
		loc := p.lx.loc()
		if _, err := p.expect(tokDollar, "$"); err != nil {
			return nil, err
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		ref, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		vd := &VariableDefinition{Name: name, TypeRef: ref, Loc: loc}
		if p.tok.kind == tokEquals {
			if err := p.advance(); err != nil {
				return nil, err
			}
			lit, err := p.parseValue(true)
			if err != nil {
				return nil, err
			}
			vd.Default = lit
			vd.HasDefault = true
		}
		out = append(out, vd)
	}
	if _, err := p.expect(tokParenClose, ")"); err != nil {
		return nil, err
	}
	for i, vd := range out {
		for _, other := range out[:i] {
			if other.Name == vd.Name {
				return nil, gqerrors.NewAt(gqerrors.KindParse, vd.Loc.Line, vd.Loc.Column, "duplicate variable $%s", vd.Name)
			}
		}
	}
	return out, nil
}

// parseTypeRef reads a `Type`, `[Type]`, or `Type!`/`[Type]!` reference
// and renders it back into the bracket/bang string Schema.GetType expects.
func (p *parser) parseTypeRef() (string, error) {
	var sb strings.Builder
	if p.tok.kind == tokBracketOpen {
		if err := p.advance(); err != nil {
			return "", err
		}
		inner, err := p.parseTypeRef()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(tokBracketClose, "]"); err != nil {
			return "", err
		}
		sb.WriteString("[")
		sb.WriteString(inner)
		sb.WriteString("]")
	} else {
		name, err := p.expectName()
		if err != nil {
			return "", err
		}
		sb.WriteString(name)
	}
	if p.tok.kind == tokBang {
		if err := p.advance(); err != nil {
			return "", err
		}
		sb.WriteString("!")
	}
	return sb.String(), nil
}

func (p *parser) parseDirectives() ([]*DirectiveApplication, error) {
	var out []*DirectiveApplication
	for p.tok.kind == tokAt {
		loc := p.lx.loc()
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		args, order, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		out = append(out, &DirectiveApplication{Name: name, Args: args, ArgOrder: order, Loc: loc})
	}
	return out, nil
}

func (p *parser) parseArguments() (map[string]Literal, []string, error) {
	if p.tok.kind != tokParenOpen {
		return nil, nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	args := map[string]Literal{}
	var order []string
	for p.tok.kind != tokParenClose {
		loc := Location{Line: p.tok.line, Column: p.tok.column}
		name, err := p.expectName()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, nil, err
		}
		val, err := p.parseValue(false)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := args[name]; dup {
			return nil, nil, gqerrors.NewAt(gqerrors.KindParse, loc.Line, loc.Column, "duplicate argument %q", name)
		}
		args[name] = val
		order = append(order, name)
	}
	if _, err := p.expect(tokParenClose, ")"); err != nil {
		return nil, nil, err
	}
	return args, order, nil
}

// parseValue reads one input value. constOnly forbids variable references,
// as required inside default-value position.
func (p *parser) parseValue(constOnly bool) (Literal, error) {
	loc := p.lx.loc()
	switch p.tok.kind {
	case tokDollar:
		if constOnly {
			return nil, p.errorf("variables are not allowed in a default value")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		return &VariableRef{Name: name, Loc: loc}, nil
	case tokInt:
		v := p.tok.intVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &IntValue{Value: v, Loc: loc}, nil
	case tokFloat:
		v := p.tok.fltVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &FloatValue{Value: v, Loc: loc}, nil
	case tokString:
		v := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &StringValue{Value: v, Loc: loc}, nil
	case tokName:
		switch p.tok.text {
		case "true":
			p.advance()
			return &BoolValue{Value: true, Loc: loc}, nil
		case "false":
			p.advance()
			return &BoolValue{Value: false, Loc: loc}, nil
		case "null":
			p.advance()
			return &NullValue{Loc: loc}, nil
		default:
			name := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &EnumLiteral{Name: name, Loc: loc}, nil
		}
	case tokBracketOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		var values []Literal
		for p.tok.kind != tokBracketClose {
			v, err := p.parseValue(constOnly)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		if _, err := p.expect(tokBracketClose, "]"); err != nil {
			return nil, err
		}
		return &ListLiteral{Values: values, Loc: loc}, nil
	case tokBraceOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		fields := map[string]Literal{}
		var order []string
		for p.tok.kind != tokBraceClose {
			name, err := p.expectName()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokColon, ":"); err != nil {
				return nil, err
			}
			v, err := p.parseValue(constOnly)
			if err != nil {
				return nil, err
			}
			if _, dup := fields[name]; dup {
				return nil, gqerrors.NewAt(gqerrors.KindParse, loc.Line, loc.Column, "duplicate input field %q", name)
			}
			fields[name] = v
			order = append(order, name)
		}
		if _, err := p.expect(tokBraceClose, "}"); err != nil {
			return nil, err
		}
		return &ObjectLiteral{Fields: fields, FieldOrder: order, Loc: loc}, nil
	default:
		return nil, p.errorf("expected a value")
	}
}

func (p *parser) parseSelectionSet() (*SelectionSet, error) {
	loc := p.lx.loc()
	if _, err := p.expect(tokBraceOpen, "{"); err != nil {
		return nil, err
	}
	var sels []Selection
	for p.tok.kind != tokBraceClose {
		sel, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	if _, err := p.expect(tokBraceClose, "}"); err != nil {
		return nil, err
	}
	if len(sels) == 0 {
		return nil, gqerrors.NewAt(gqerrors.KindParse, loc.Line, loc.Column, "selection set must not be empty")
	}
	return &SelectionSet{Selections: sels, Loc: loc}, nil
}

func (p *parser) parseSelection() (Selection, error) {
	if p.tok.kind == tokSpread {
		return p.parseFragmentSelection()
	}
	return p.parseFieldQuery()
}

func (p *parser) parseFragmentSelection() (Selection, error) {
	loc := p.lx.loc()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokName && p.tok.text != "on" {
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives()
		if err != nil {
			return nil, err
		}
		return &FragmentSpreadRef{Name: name, Directives: directives, Loc: loc}, nil
	}
	var typeCondition string
	if p.atName("on") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		typeCondition = name
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	ss, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &InlineFragment{TypeCondition: typeCondition, Directives: directives, SelectionSet: ss, Loc: loc}, nil
}

func (p *parser) parseFieldQuery() (Selection, error) {
	loc := p.lx.loc()
	first, err := p.expectName()
	if err != nil {
		return nil, err
	}
	alias := ""
	name := first
	if p.tok.kind == tokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.expectName()
		if err != nil {
			return nil, err
		}
		alias = first
		name = n
	}
	args, order, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	var ss *SelectionSet
	if p.tok.kind == tokBraceOpen {
		ss, err = p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
	}
	return &FieldQuery{Alias: alias, Name: name, Args: args, ArgOrder: order, Directives: directives, SelectionSet: ss, Loc: loc}, nil
}

func (p *parser) parseFragmentDefinition() (*Fragment, error) {
	loc := p.lx.loc()
	if err := p.advance(); err != nil { // "fragment"
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if name == "on" {
		return nil, gqerrors.NewAt(gqerrors.KindParse, loc.Line, loc.Column, `fragment name must not be "on"`)
	}
	if !p.atName("on") {
		return nil, p.errorf(`expected "on"`)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	typeCondition, err := p.expectName()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	ss, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &Fragment{Name: name, TypeCondition: typeCondition, Directives: directives, SelectionSet: ss, Loc: loc}, nil
}

// ---- validation pass -------------------------------------------------

func validateDocument(doc *Document, schema *Schema) error {
	if err := checkFragmentCycles(doc); err != nil {
		return err
	}
	for _, name := range doc.OperationOrder {
		op := doc.Operations[name]
		varDefs := map[string]*VariableDefinition{}
		for _, vd := range op.Variables {
			if _, err := schema.GetType(vd.TypeRef, true, false); err != nil {
				return gqerrors.NewAt(gqerrors.KindVariables, vd.Loc.Line, vd.Loc.Column, "operation %q variable $%s: %s", op.Name, vd.Name, err)
			}
			varDefs[vd.Name] = vd
		}
		var rootType NamedType = schema.Query
		switch op.Type {
		case OperationMutation:
			if schema.Mutation == nil {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, op.Loc.Line, op.Loc.Column, "operation %q: schema has no mutation root type", op.Name)
			}
			rootType = schema.Mutation
		case OperationSubscription:
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, op.Loc.Line, op.Loc.Column, "operation %q: subscriptions are not executable by this engine", op.Name)
		}
		if err := validateDirectives(op.Directives, LocationQuery, schema, varDefs); err != nil {
			return err
		}
		if err := validateSelectionSet(op.SelectionSet, rootType, schema, doc, varDefs, map[string]bool{}); err != nil {
			return err
		}
	}
	used := map[string]bool{}
	for _, op := range doc.Operations {
		markFragmentUses(op.SelectionSet, used)
	}
	for _, name := range sortedFragmentNames(doc) {
		frag := doc.Fragments[name]
		if !used[name] {
			return gqerrors.NewAt(gqerrors.KindParse, frag.Loc.Line, frag.Loc.Column, "Unused fragment %s", name)
		}
		cond, ok := schema.Type(frag.TypeCondition)
		if !ok {
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, frag.Loc.Line, frag.Loc.Column, "fragment %q: unknown type condition %q", frag.Name, frag.TypeCondition)
		}
		if err := validateSelectionSet(frag.SelectionSet, cond, schema, doc, nil, map[string]bool{}); err != nil {
			return err
		}
	}
	return nil
}

func sortedFragmentNames(doc *Document) []string {
	names := make([]string, 0, len(doc.Fragments))
	for name := range doc.Fragments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func markFragmentUses(ss *SelectionSet, used map[string]bool) {
	if ss == nil {
		return
	}
	for _, sel := range ss.Selections {
		switch s := sel.(type) {
		case *FieldQuery:
			markFragmentUses(s.SelectionSet, used)
		case *InlineFragment:
			markFragmentUses(s.SelectionSet, used)
		case *FragmentSpreadRef:
			if !used[s.Name] {
				used[s.Name] = true
			}
		}
	}
}

// checkFragmentCycles performs a DFS over the fragment-spread graph,
// reporting a cycle in the "A => B => A" format grounded on
// original_source/src/graphql/document/parser.py's
// _assert_no_fragment_cycle.
func checkFragmentCycles(doc *Document) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var stack []string
	var visit func(name string) error
	visit = func(name string) error {
		color[name] = gray
		stack = append(stack, name)
		frag, ok := doc.Fragments[name]
		if ok {
			var refs []string
			collectFragmentSpreads(frag.SelectionSet, &refs)
			for _, ref := range refs {
				switch color[ref] {
				case gray:
					cycle := append(append([]string{}, stack...), ref)
					return gqerrors.New(gqerrors.KindParse, "Fragment cycle detected: %s", strings.Join(cycle, " => "))
				case white:
					if _, declared := doc.Fragments[ref]; declared {
						if err := visit(ref); err != nil {
							return err
						}
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return nil
	}
	names := make([]string, 0, len(doc.Fragments))
	for name := range doc.Fragments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if color[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectFragmentSpreads(ss *SelectionSet, out *[]string) {
	if ss == nil {
		return
	}
	for _, sel := range ss.Selections {
		switch s := sel.(type) {
		case *FieldQuery:
			collectFragmentSpreads(s.SelectionSet, out)
		case *InlineFragment:
			collectFragmentSpreads(s.SelectionSet, out)
		case *FragmentSpreadRef:
			*out = append(*out, s.Name)
		}
	}
}

func validateDirectives(directives []*DirectiveApplication, loc DirectiveLocation, schema *Schema, varDefs map[string]*VariableDefinition) error {
	for _, app := range directives {
		dt, ok := schema.Directive(app.Name)
		if !ok {
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, app.Loc.Line, app.Loc.Column, "unknown directive @%s", app.Name)
		}
		if !dt.AllowsLocation(loc) {
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, app.Loc.Line, app.Loc.Column, "directive @%s is not allowed at %s", app.Name, loc)
		}
		for _, argName := range app.ArgOrder {
			argType, ok := dt.Args[argName]
			if !ok {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, app.Loc.Line, app.Loc.Column, "directive @%s has no argument %q", app.Name, argName)
			}
			if err := checkLiteralAgainstType(app.Args[argName], argType, varDefs, schema); err != nil {
				return gqerrors.NewAt(gqerrors.KindVariables, app.Loc.Line, app.Loc.Column, "directive @%s(%s): %s", app.Name, argName, err)
			}
		}
		for name, argType := range dt.Args {
			if IsNonNull(argType) {
				if _, given := app.Args[name]; !given {
					return gqerrors.NewAt(gqerrors.KindVariables, app.Loc.Line, app.Loc.Column, "directive @%s is missing required argument %q", app.Name, name)
				}
			}
		}
	}
	return nil
}

func validateSelectionSet(ss *SelectionSet, parent NamedType, schema *Schema, doc *Document, varDefs map[string]*VariableDefinition, fragStack map[string]bool) error {
	if ss == nil {
		return nil
	}
	byKey := map[string][]*FieldQuery{}
	for _, sel := range ss.Selections {
		switch s := sel.(type) {
		case *FieldQuery:
			byKey[s.ResponseKey()] = append(byKey[s.ResponseKey()], s)
			if err := validateField(s, parent, schema, doc, varDefs, fragStack); err != nil {
				return err
			}
		case *InlineFragment:
			cond := parent
			if s.TypeCondition != "" {
				t, ok := schema.Type(s.TypeCondition)
				if !ok {
					return gqerrors.NewAt(gqerrors.KindSchemaMismatch, s.Loc.Line, s.Loc.Column, "unknown type condition %q", s.TypeCondition)
				}
				cond = t
			}
			if !schema.Intersects(parent, cond) {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, s.Loc.Line, s.Loc.Column, "fragment condition %q cannot be applied to type %q", cond.TypeName(), parent.TypeName())
			}
			if err := validateDirectives(s.Directives, LocationInlineFragment, schema, varDefs); err != nil {
				return err
			}
			if err := validateSelectionSet(s.SelectionSet, cond, schema, doc, varDefs, fragStack); err != nil {
				return err
			}
		case *FragmentSpreadRef:
			frag, ok := doc.Fragments[s.Name]
			if !ok {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, s.Loc.Line, s.Loc.Column, "undefined fragment %q", s.Name)
			}
			cond, ok := schema.Type(frag.TypeCondition)
			if !ok {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, s.Loc.Line, s.Loc.Column, "fragment %q: unknown type condition %q", frag.Name, frag.TypeCondition)
			}
			if !schema.Intersects(parent, cond) {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, s.Loc.Line, s.Loc.Column, "fragment %q condition %q cannot be applied to type %q", s.Name, cond.TypeName(), parent.TypeName())
			}
			if err := validateDirectives(s.Directives, LocationFragmentSpread, schema, varDefs); err != nil {
				return err
			}
			if fragStack[s.Name] {
				continue
			}
			fragStack[s.Name] = true
			err := validateSelectionSet(frag.SelectionSet, cond, schema, doc, varDefs, fragStack)
			delete(fragStack, s.Name)
			if err != nil {
				return err
			}
		}
	}
	for key, fields := range byKey {
		first := fields[0]
		for _, other := range fields[1:] {
			if other.Name != first.Name || !sameArgs(other.Args, first.Args) {
				return gqerrors.NewAt(gqerrors.KindSchemaMismatch, other.Loc.Line, other.Loc.Column, "Error merging %s key in selection set", key)
			}
		}
	}
	return nil
}

func sameArgs(a, b map[string]Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		other, ok := b[k]
		if !ok || literalString(v) != literalString(other) {
			return false
		}
	}
	return true
}

func literalString(lit Literal) string {
	switch v := lit.(type) {
	case *IntValue:
		return fmt.Sprintf("Int(%d)", v.Value)
	case *FloatValue:
		return fmt.Sprintf("Float(%v)", v.Value)
	case *StringValue:
		return fmt.Sprintf("String(%q)", v.Value)
	case *BoolValue:
		return fmt.Sprintf("Bool(%v)", v.Value)
	case *NullValue:
		return "Null"
	case *EnumLiteral:
		return fmt.Sprintf("Enum(%s)", v.Name)
	case *VariableRef:
		return fmt.Sprintf("Var(%s)", v.Name)
	case *ListLiteral:
		var sb strings.Builder
		sb.WriteString("[")
		for _, e := range v.Values {
			sb.WriteString(literalString(e))
			sb.WriteString(",")
		}
		sb.WriteString("]")
		return sb.String()
	case *ObjectLiteral:
		var sb strings.Builder
		sb.WriteString("{")
		for _, name := range v.FieldOrder {
			sb.WriteString(name)
			sb.WriteString(":")
			sb.WriteString(literalString(v.Fields[name]))
			sb.WriteString(",")
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return ""
	}
}

func validateField(f *FieldQuery, parent NamedType, schema *Schema, doc *Document, varDefs map[string]*VariableDefinition, fragStack map[string]bool) error {
	if f.Name == "__typename" {
		return validateDirectives(f.Directives, LocationField, schema, varDefs)
	}
	fd, err := lookupFieldDescriptor(f.Name, parent, schema)
	if err != nil {
		return gqerrors.NewAt(gqerrors.KindSchemaMismatch, f.Loc.Line, f.Loc.Column, "%s", err)
	}
	for _, argName := range f.ArgOrder {
		argType, ok := fd.Args[argName]
		if !ok {
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, f.Loc.Line, f.Loc.Column, "field %s.%s has no argument %q", parent.TypeName(), f.Name, argName)
		}
		if err := checkLiteralAgainstType(f.Args[argName], argType, varDefs, schema); err != nil {
			return gqerrors.NewAt(gqerrors.KindVariables, f.Loc.Line, f.Loc.Column, "%s.%s(%s): %s", parent.TypeName(), f.Name, argName, err)
		}
	}
	for name, argType := range fd.Args {
		if IsNonNull(argType) {
			if _, given := f.Args[name]; !given {
				return gqerrors.NewAt(gqerrors.KindVariables, f.Loc.Line, f.Loc.Column, "field %s.%s is missing required argument %q", parent.TypeName(), f.Name, name)
			}
		}
	}
	if err := validateDirectives(f.Directives, LocationField, schema, varDefs); err != nil {
		return err
	}
	base := BaseType(fd.FieldType)
	switch base.(type) {
	case *Object, *Interface, *Union:
		if f.SelectionSet == nil {
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, f.Loc.Line, f.Loc.Column, "field %s.%s of type %s requires a selection set", parent.TypeName(), f.Name, base.TypeName())
		}
		return validateSelectionSet(f.SelectionSet, base, schema, doc, varDefs, fragStack)
	default:
		if f.SelectionSet != nil {
			return gqerrors.NewAt(gqerrors.KindSchemaMismatch, f.Loc.Line, f.Loc.Column, "field %s.%s of type %s must not have a selection set", parent.TypeName(), f.Name, base.TypeName())
		}
	}
	return nil
}

func lookupFieldDescriptor(name string, parent NamedType, schema *Schema) (*FieldDescriptor, error) {
	switch t := parent.(type) {
	case *Object:
		if f, ok := t.Fields[name]; ok {
			return &f.FieldDescriptor, nil
		}
		if name == "__schema" || name == "__type" {
			if fd, ok := schema.ImplicitRootField(name); ok && t == schema.Query {
				return fd, nil
			}
		}
	case *Interface:
		if fd, ok := t.FieldDescriptors[name]; ok {
			return fd, nil
		}
	}
	return nil, fmt.Errorf("field %q does not exist on type %q", name, parent.TypeName())
}

// checkLiteralAgainstType statically validates a literal (or a variable
// reference to be resolved at execution time) against an expected type.
func checkLiteralAgainstType(lit Literal, t Type, varDefs map[string]*VariableDefinition, schema *Schema) error {
	if lit == nil {
		if IsNonNull(t) {
			return fmt.Errorf("missing required value of non-null type %s", t)
		}
		return nil
	}
	if ref, ok := lit.(*VariableRef); ok {
		vd, ok := varDefs[ref.Name]
		if !ok {
			return fmt.Errorf("undefined variable $%s", ref.Name)
		}
		varType, err := schema.GetType(vd.TypeRef, true, false)
		if err != nil {
			return err
		}
		if !variableTypeCompatible(varType, t, vd.HasDefault) {
			return fmt.Errorf("variable $%s of type %s cannot be used where %s is expected", ref.Name, vd.TypeRef, t)
		}
		return nil
	}
	if _, ok := lit.(*NullValue); ok {
		if IsNonNull(t) {
			return fmt.Errorf("got null for non-null type %s", t)
		}
		return nil
	}
	if nn, ok := t.(*NonNull); ok {
		return checkLiteralAgainstType(lit, nn.Of, varDefs, schema)
	}
	if lst, ok := t.(*List); ok {
		if list, ok := lit.(*ListLiteral); ok {
			for _, v := range list.Values {
				if err := checkLiteralAgainstType(v, lst.Of, varDefs, schema); err != nil {
					return err
				}
			}
			return nil
		}
		return checkLiteralAgainstType(lit, lst.Of, varDefs, schema)
	}
	switch named := t.(type) {
	case *Scalar:
		if _, err := named.Impl.CoerceLiteral(lit); err != nil {
			return err
		}
		return nil
	case *Enum:
		el, ok := lit.(*EnumLiteral)
		if !ok {
			return fmt.Errorf("expected an enum constant for %s, got %s", named.Name, lit.literalKind())
		}
		if _, ok := named.ValueFor(el.Name); !ok {
			return fmt.Errorf("%s is not a member of enum %s", el.Name, named.Name)
		}
		return nil
	case *InputObject:
		obj, ok := lit.(*ObjectLiteral)
		if !ok {
			return fmt.Errorf("expected an input object for %s, got %s", named.Name, lit.literalKind())
		}
		for fname := range obj.Fields {
			if _, ok := named.Fields[fname]; !ok {
				return fmt.Errorf("%s has no input field %q", named.Name, fname)
			}
		}
		for fname, ftype := range named.Fields {
			if err := checkLiteralAgainstType(obj.Fields[fname], ftype, varDefs, schema); err != nil {
				return fmt.Errorf("field %s: %s", fname, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%s is not a valid input type", t)
	}
}

// variableTypeCompatible implements the GraphQL spec's AreTypesCompatible
// check: varType must be usable wherever locationType is expected.
func variableTypeCompatible(varType, locationType Type, varHasDefault bool) bool {
	if ln, ok := locationType.(*NonNull); ok {
		if vn, ok := varType.(*NonNull); ok {
			return variableTypeCompatible(vn.Of, ln.Of, false)
		}
		if varHasDefault {
			return variableTypeCompatible(varType, ln.Of, false)
		}
		return false
	}
	if vn, ok := varType.(*NonNull); ok {
		return variableTypeCompatible(vn.Of, locationType, false)
	}
	if ll, ok := locationType.(*List); ok {
		vl, ok := varType.(*List)
		if !ok {
			return false
		}
		return variableTypeCompatible(vl.Of, ll.Of, false)
	}
	if _, ok := varType.(*List); ok {
		return false
	}
	vNamed, vok := varType.(NamedType)
	lNamed, lok := locationType.(NamedType)
	return vok && lok && vNamed.TypeName() == lNamed.TypeName()
}
