// Package errors holds the GraphQL error record types shared by the
// schema, parser/validator, and executor.
package errors

import "fmt"

// Kind discriminates the pre-execution and runtime error categories
// named in spec.md §6 "Exit/error kinds".
type Kind string

const (
	KindParse          Kind = "ParseError"
	KindOperationName  Kind = "OperationNameError"
	KindVariables      Kind = "VariablesError"
	KindSchemaMismatch Kind = "SchemaMismatchError"
	KindFieldType      Kind = "FieldTypeError"
	KindBadScalar      Kind = "BadScalarError"
	KindResolver       Kind = "ResolverError"
)

// Location is a 1-based line/column pair within a document string.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before reports whether a sorts ahead of b in document order.
func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// GraphQLError is a single response error record (spec.md §7).
type GraphQLError struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Path          []interface{}          `json:"path,omitempty"`
	Kind          Kind                   `json:"-"`
	ResolverError error                  `json:"-"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

func (e *GraphQLError) Error() string {
	if e == nil {
		return "<nil>"
	}
	str := e.Message
	if e.ResolverError != nil {
		str += ": " + e.ResolverError.Error()
	}
	for _, loc := range e.Locations {
		str += fmt.Sprintf(" (%d:%d)", loc.Line, loc.Column)
	}
	return str
}

// New builds a GraphQLError with no location information.
func New(kind Kind, format string, args ...interface{}) *GraphQLError {
	return &GraphQLError{Message: fmt.Sprintf(format, args...), Kind: kind}
}

// NewAt builds a GraphQLError carrying a single source location.
func NewAt(kind Kind, line, column int, format string, args ...interface{}) *GraphQLError {
	return &GraphQLError{
		Message:   fmt.Sprintf(format, args...),
		Kind:      kind,
		Locations: []Location{{Line: line, Column: column}},
	}
}

// MultiError is a non-empty list of GraphQLError, itself an error.
type MultiError []*GraphQLError

func (m MultiError) Error() string {
	var out string
	for i, err := range m {
		if i > 0 {
			out += "\n"
		}
		out += err.Error()
	}
	return out
}

// AsRecords converts any error into a response-record list, falling back
// to a single default record if err is not already a GraphQLError/MultiError.
func AsRecords(err error) []*GraphQLError {
	switch e := err.(type) {
	case nil:
		return nil
	case MultiError:
		return []*GraphQLError(e)
	case *GraphQLError:
		return []*GraphQLError{e}
	default:
		return []*GraphQLError{{Message: e.Error()}}
	}
}
