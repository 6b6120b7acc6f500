package httpclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"ok"}`))
	}))
	defer server.Close()

	var resp struct {
		Name string `json:"name"`
	}
	opts := DefaultOptions().WithHeader("Authorization", "Bearer abc")
	if err := GetJSON(server.URL, &resp, opts); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if resp.Name != "ok" {
		t.Errorf("resp.Name = %q, want ok", resp.Name)
	}
}

func TestGetJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "非2xx返回StatusError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("bad gateway"))
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected StatusError, got %T", err)
				}
				if statusErr.StatusCode != http.StatusBadGateway || statusErr.Body != "bad gateway" {
					t.Errorf("unexpected StatusError %+v", statusErr)
				}
			},
		},
		{
			name: "无效JSON返回DecodeError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			check: func(t *testing.T, err error) {
				var decodeErr *DecodeError
				if !errors.As(err, &decodeErr) {
					t.Fatalf("expected DecodeError, got %T", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			var resp map[string]interface{}
			err := GetJSON(server.URL, &resp)
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestGetJSON_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	var resp map[string]interface{}
	err := GetJSON(addr, &resp)

	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		t.Fatalf("expected *url.Error in chain, got %v", err)
	}
}
