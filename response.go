package graphql

import (
	"context"

	gqerrors "github.com/arcweave/graphql/errors"
)

// Response is the top-level envelope returned by Execute/ExecuteDocument
// (spec.md §7 "data"/"errors"/"extensions").
type Response struct {
	Data       interface{}                `json:"data,omitempty"`
	Errors     []*gqerrors.GraphQLError   `json:"errors,omitempty"`
	Extensions map[string]interface{}     `json:"extensions,omitempty"`
}

// Parse parses and validates documentStr against schema, consulting and
// populating schema's internal parsed-document cache.
func Parse(documentStr string, schema *Schema) (*Document, error) {
	if schema.docCache != nil {
		if doc, ok := schema.docCache.get(documentStr); ok {
			return doc, nil
		}
	}
	doc, err := ParseDocument(documentStr, schema)
	if err != nil {
		return nil, err
	}
	if schema.docCache != nil {
		schema.docCache.put(documentStr, doc)
	}
	return doc, nil
}

// Execute parses (or retrieves from cache), then executes, documentStr
// against schema using root as the query/mutation root resolver value
// (spec.md §6 External Interfaces).
func Execute(ctx context.Context, documentStr string, schema *Schema, hooks Hooks, root interface{}, variables map[string]interface{}, operationName string) *Response {
	if hooks == nil {
		hooks = BaseHooks{}
	}
	hooks.ExecuteDocumentStrStart(ctx, documentStr)
	defer hooks.ExecuteDocumentStrEnd(ctx, documentStr)

	doc, err := Parse(documentStr, schema)
	if err != nil {
		return &Response{Errors: gqerrors.AsRecords(err)}
	}
	hooks.ParsedDocument(ctx, doc)
	return ExecuteDocument(ctx, doc, schema, hooks, root, variables, operationName)
}

// ExecuteDocument executes an already parsed-and-validated Document
// (spec.md §6 External Interfaces).
func ExecuteDocument(ctx context.Context, doc *Document, schema *Schema, hooks Hooks, root interface{}, variables map[string]interface{}, operationName string) *Response {
	if hooks == nil {
		hooks = BaseHooks{}
	}
	op, err := selectOperation(doc, operationName)
	if err != nil {
		return &Response{Errors: gqerrors.AsRecords(err)}
	}

	hooks.ExecuteDocumentStart(ctx, doc)
	defer hooks.ExecuteDocumentEnd(ctx, doc)

	vars, err := coerceVariables(op, schema, variables)
	if err != nil {
		return &Response{Errors: gqerrors.AsRecords(err)}
	}

	ec := &execCtx{ctx: ctx, schema: schema, hooks: hooks, doc: doc, vars: vars}

	var rootType *Object
	isMutation := op.Type == OperationMutation
	if isMutation {
		rootType = schema.Mutation
	} else {
		rootType = schema.Query
	}

	data, _ := ec.executeSelectionSetForObject(ctx, op.SelectionSet, rootType, root, nil, isMutation)

	resp := &Response{Data: data, Errors: ec.errs}
	if ext := hooks.Extensions(ctx); len(ext) > 0 {
		resp.Extensions = ext
	}
	return resp
}

func selectOperation(doc *Document, operationName string) (*Operation, error) {
	if operationName != "" {
		op, ok := doc.Operations[operationName]
		if !ok {
			return nil, gqerrors.New(gqerrors.KindOperationName, "unknown operation %q", operationName)
		}
		return op, nil
	}
	if len(doc.Operations) == 1 {
		for _, op := range doc.Operations {
			return op, nil
		}
	}
	if op, ok := doc.Operations[""]; ok && len(doc.Operations) == 1 {
		return op, nil
	}
	return nil, gqerrors.New(gqerrors.KindOperationName, "document contains multiple operations; an operation name is required")
}
