package graphql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesPostRequest(t *testing.T) {
	s := testSchema(t)
	h := NewHandler(s, nil, nil)

	body, err := json.Marshal(map[string]interface{}{
		"query": `{ item(id: "w1") { id name } }`,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
}

func TestHandlerRejectsNonPost(t *testing.T) {
	s := testSchema(t)
	h := NewHandler(s, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	s := testSchema(t)
	h := NewHandler(s, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
