package graphql

import (
	"context"

	gqerrors "github.com/arcweave/graphql/errors"
)

// Hooks is the lifecycle-callback protocol threaded through one execution,
// grounded on original_source/src/graphql/executor/context.py's
// GraphQlContext. Implementations embed BaseHooks to pick up no-op
// defaults for whichever callbacks they don't care about.
type Hooks interface {
	// ContextArg supplies the value bound to a Method field's declared
	// context argument name; the executor calls this once per resolver
	// invocation that names the argument via WithContextArg.
	ContextArg(ctx context.Context, name string) (interface{}, error)

	// ExceptionErrors lets a Hooks implementation translate a panic or
	// resolver error recovered during execution into zero or more
	// GraphQLError records, instead of the executor's default rendering.
	ExceptionErrors(ctx context.Context, err error) []*gqerrors.GraphQLError

	// ExecuteDocumentStrStart/End bracket parsing plus execution of a
	// document string, before the parsed-document cache is consulted.
	ExecuteDocumentStrStart(ctx context.Context, documentStr string)
	ExecuteDocumentStrEnd(ctx context.Context, documentStr string)

	// ParsedDocument is called once the document has been parsed (or
	// retrieved from cache) and validated, before execution begins.
	ParsedDocument(ctx context.Context, doc *Document)

	// ExecuteDocumentStart/End bracket the evaluation of an already
	// parsed Document.
	ExecuteDocumentStart(ctx context.Context, doc *Document)
	ExecuteDocumentEnd(ctx context.Context, doc *Document)

	// Extensions contributes entries to the response envelope's top-level
	// "extensions" map.
	Extensions(ctx context.Context) map[string]interface{}

	// MutationStart/End bracket the evaluation of one root mutation
	// field. The executor guarantees these fire in strict alternation,
	// exactly once per root mutation field, in selection order.
	// MutationStart fires immediately before the resolver is invoked,
	// with the field's coerced (non-context) arguments. MutationEnd
	// fires immediately after the resolver returns, before any
	// subfields of the mutation field are resolved, carrying the same
	// arguments plus the resolver's raw result (nil on error) and the
	// resolver's error (nil on success).
	MutationStart(ctx context.Context, fieldName string, arguments map[string]interface{})
	MutationEnd(ctx context.Context, fieldName string, arguments map[string]interface{}, result interface{}, err error)
}

// BaseHooks implements Hooks with no-op defaults; embed it and override
// only the callbacks a particular Hooks implementation needs.
type BaseHooks struct{}

func (BaseHooks) ContextArg(context.Context, string) (interface{}, error) { return nil, nil }
func (BaseHooks) ExceptionErrors(context.Context, error) []*gqerrors.GraphQLError { return nil }
func (BaseHooks) ExecuteDocumentStrStart(context.Context, string)               {}
func (BaseHooks) ExecuteDocumentStrEnd(context.Context, string)                 {}
func (BaseHooks) ParsedDocument(context.Context, *Document)                    {}
func (BaseHooks) ExecuteDocumentStart(context.Context, *Document)              {}
func (BaseHooks) ExecuteDocumentEnd(context.Context, *Document)                {}
func (BaseHooks) Extensions(context.Context) map[string]interface{}            { return nil }
func (BaseHooks) MutationStart(context.Context, string, map[string]interface{})            {}
func (BaseHooks) MutationEnd(context.Context, string, map[string]interface{}, interface{}, error) {}

var _ Hooks = BaseHooks{}
