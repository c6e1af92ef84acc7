package cnpj

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValid(t *testing.T) {
	cases := []struct {
		cnpj string
		want bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"11222333000182", false},
		{"00000000000000", false},
		{"123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.cnpj); got != tc.want {
			t.Fatalf("Valid(%q) = %v, want %v", tc.cnpj, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("11.222.333/0001-81"); got != "11222333000181" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/11222333000181" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"razao_social":"Barbearia Silva LTDA","nome_fantasia":"Barbearia Silva","municipio":"Sao Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rec, err := client.Lookup(context.Background(), "11.222.333/0001-81")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.RazaoSocial != "Barbearia Silva LTDA" {
		t.Fatalf("razao_social = %q", rec.RazaoSocial)
	}
	if rec.CNPJ != "11222333000181" {
		t.Fatalf("cnpj = %q", rec.CNPJ)
	}
}

func TestLookup_InvalidAndMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	client := NewClient(srv.URL)

	if _, err := client.Lookup(context.Background(), "123"); !errors.Is(err, ErrInvalidCNPJ) {
		t.Fatalf("expected ErrInvalidCNPJ, got %v", err)
	}
	if _, err := client.Lookup(context.Background(), "11222333000181"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
