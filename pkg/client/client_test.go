package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Targets_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/targets" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":"t1","name":"api","status":"up"}]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	targets, err := c.Targets().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(targets) != 1 || targets[0].ID != "t1" || targets[0].Status != "up" {
		t.Errorf("List() = %+v", targets)
	}
}

func TestClient_UnwrapsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"target not found"}}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.Targets().Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if !apiErr.IsNotFound() || apiErr.Code != "NOT_FOUND" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestClient_ListChecks_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page_size"); got != "5" {
			t.Errorf("page_size = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"data":[{"id":"c1","target_id":"t1","status":"up"}],"page":1,"page_size":5,"total_items":1,"total_pages":1}}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	page, err := c.Targets().ListChecks(context.Background(), "t1", &ListOptions{Page: 1, PageSize: 5})
	if err != nil {
		t.Fatalf("ListChecks() error = %v", err)
	}
	if page.TotalItems != 1 || len(page.Data) != 1 || page.Data[0].ID != "c1" {
		t.Errorf("page = %+v", page)
	}
}
