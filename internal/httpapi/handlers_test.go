package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ardenhollis/structurize/pkg/audit"
	"github.com/ardenhollis/structurize/pkg/cache"
)

func testServer() *Server {
	return New(log.New(io.Discard), cache.NewNullCache(), audit.NewMemoryStore())
}

const diamondFixture = `{
	"entry": "entry",
	"blocks": [
		{"name": "entry", "terminator": {"kind": "condition", "cond": 1, "true_target": "a", "false_target": "b"}},
		{"name": "a", "terminator": {"kind": "branch", "target": "m"}},
		{"name": "b", "terminator": {"kind": "branch", "target": "m"}},
		{"name": "m", "terminator": {"kind": "return"}}
	]
}`

func TestHandleStructurizeResolvesDiamond(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/structurize", bytes.NewBufferString(diamondFixture))
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp structurizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected a non-empty run id")
	}

	var m *BlockView
	for i := range resp.Graph.Blocks {
		if resp.Graph.Blocks[i].Name == "m" {
			m = &resp.Graph.Blocks[i]
		}
	}
	if m == nil {
		t.Fatal("expected block m in graph view")
	}
}

func TestHandleGetRunAfterStructurize(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/structurize", bytes.NewBufferString(diamondFixture))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var resp structurizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/runs/"+resp.ID, nil)
	rec2 := httptest.NewRecorder()
	s.Router().ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec2.Code, rec2.Body.String())
	}
}

func TestHandleGetRunMissing(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/runs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleStructurizeRejectsBadFixture(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/structurize", bytes.NewBufferString(`{"entry": "missing", "blocks": []}`))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
