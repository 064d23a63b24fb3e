package viacep

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Client *Client
	Logger *zap.Logger
}

func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Logger: logger}
}

// Buscar trata GET /cep/{cep}: o formulário de empresa consulta aqui para
// auto-preencher o endereço ao completar os 8 dígitos.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	cep := mux.Vars(r)["cep"]

	endereco, err := h.Client.BuscarPorCEP(r.Context(), cep)
	if err != nil {
		switch {
		case errors.Is(err, ErrCEPInvalido):
			http.Error(w, "CEP inválido", http.StatusBadRequest)
		case errors.Is(err, ErrNaoEncontrado):
			http.Error(w, "CEP não encontrado", http.StatusNotFound)
		default:
			h.Logger.Warn("consulta de CEP falhou", zap.Error(err), zap.String("cep", cep))
			http.Error(w, "Erro ao consultar CEP", http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(endereco)
}
