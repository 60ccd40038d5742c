package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMonitorRepo_Actions(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	r := NewMonitorRepo(srv.URL+"/", srv.Client())
	ctx := context.Background()

	for _, fn := range []func(context.Context) error{r.Start, r.Stop, r.Restart, r.ForceFetch} {
		if err := fn(ctx); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	}

	expected := []string{"/control/start", "/control/stop", "/control/restart", "/control/fetch"}
	if len(paths) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, paths)
	}
	for i := range expected {
		if paths[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], paths[i])
		}
	}
}

func TestMonitorRepo_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"ok empty body", http.StatusOK, "", false},
		{"rejected", http.StatusOK, `{"success":false,"error":"not logged in"}`, true},
		{"server error", http.StatusInternalServerError, "boom", true},
		{"bad json", http.StatusOK, "not json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewMonitorRepo(srv.URL, srv.Client()).ForceFetch(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMonitorRepo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := NewMonitorRepo(srv.URL, srv.Client()).Restart(ctx); err == nil {
		t.Error("Expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Request was not bounded by context")
	}
}
