package viacep_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nucleogestao/api-processos/internal/viacep"
)

func TestBuscarPorCEP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/01310100/json/" {
			t.Errorf("path inesperado: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	cli := viacep.NewClient(srv.URL)
	end, err := cli.BuscarPorCEP(context.Background(), "01310-100")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if end.Logradouro != "Avenida Paulista" {
		t.Errorf("logradouro = %q", end.Logradouro)
	}
	if end.Cidade != "São Paulo" {
		t.Errorf("cidade = %q", end.Cidade)
	}
	if end.UF != "SP" {
		t.Errorf("uf = %q", end.UF)
	}
}

func TestBuscarPorCEPNaoEncontrado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	cli := viacep.NewClient(srv.URL)
	_, err := cli.BuscarPorCEP(context.Background(), "99999999")
	if !errors.Is(err, viacep.ErrNaoEncontrado) {
		t.Fatalf("esperado ErrNaoEncontrado, veio %v", err)
	}
}

func TestBuscarPorCEPInvalido(t *testing.T) {
	cli := viacep.NewClient("http://localhost:0")
	_, err := cli.BuscarPorCEP(context.Background(), "123")
	if !errors.Is(err, viacep.ErrCEPInvalido) {
		t.Fatalf("esperado ErrCEPInvalido, veio %v", err)
	}
}
