package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

// requestBody is the standard GraphQL-over-HTTP POST body shape.
type requestBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql requests against a fixed schema, root
// resolver value, and Hooks factory, grounded on the teacher's own
// graphql.go HTTPHandler/ServeHTTP.
type Handler struct {
	Schema    *Schema
	Root      interface{}
	NewHooks  func(*http.Request) Hooks
	upgrader  websocket.Upgrader
}

// NewHandler builds a Handler. newHooks may be nil, in which case
// BaseHooks{} is used for every request.
func NewHandler(schema *Schema, root interface{}, newHooks func(*http.Request) Hooks) *Handler {
	return &Handler{Schema: schema, Root: root, NewHooks: newHooks}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		h.serveWebSocket(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "graphql: only POST is supported", http.StatusMethodNotAllowed)
		return
	}
	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "graphql: malformed request body", http.StatusBadRequest)
		return
	}
	var hooks Hooks
	if h.NewHooks != nil {
		hooks = h.NewHooks(r)
	}
	resp := Execute(r.Context(), body.Query, h.Schema, hooks, h.Root, body.Variables, body.OperationName)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// serveWebSocket upgrades the connection without negotiating a
// subprotocol, sends a single connection_error message, and closes it;
// it reads nothing from the client and does not deliver subscriptions,
// since spec.md's Non-goals exclude the @subscription execution path.
func (h *Handler) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	_ = conn.WriteJSON(map[string]string{
		"type":    "connection_error",
		"message": "this server does not execute subscription operations",
	})
}

// ContextWithSchema is a convenience helper letting hand-written handlers
// reach the active schema from resolver context, e.g. for nested
// introspection-aware resolvers.
func ContextWithSchema(ctx context.Context, s *Schema) context.Context {
	return context.WithValue(ctx, schemaCtxKey{}, s)
}

type schemaCtxKey struct{}

// SchemaFromContext retrieves a schema installed with ContextWithSchema.
func SchemaFromContext(ctx context.Context) (*Schema, bool) {
	s, ok := ctx.Value(schemaCtxKey{}).(*Schema)
	return s, ok
}
