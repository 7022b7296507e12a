package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteDataETag(t *testing.T) {
	body := map[string]string{"name": "Babe Ruth"}

	rec := httptest.NewRecorder()
	WriteData(rec, httptest.NewRequest(http.MethodGet, "/", nil), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"name":"Babe Ruth"}` {
		t.Errorf("body = %s", got)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	WriteData(rec, req, body)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 carried a body: %s", rec.Body.String())
	}
}

func TestWriteErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusBadGateway, "UPSTREAM_ERROR", "Statistics source failed", "status 500")

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d", rec.Code)
	}
	want := `{"error":{"code":"UPSTREAM_ERROR","message":"Statistics source failed","detail":"status 500"}}` + "\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestCheckETagMatch(t *testing.T) {
	tests := []struct {
		header, etag string
		want         bool
	}{
		{"", `W/"abc"`, false},
		{"*", `W/"abc"`, true},
		{`W/"abc"`, `W/"abc"`, true},
		{`W/"def"`, `W/"abc"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, tt.etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q, %q) = %v, want %v", tt.header, tt.etag, got, tt.want)
		}
	}
}
