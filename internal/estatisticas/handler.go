package estatisticas

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	Repo   *Repository
	Logger *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{Repo: NewRepository(db), Logger: logger}
}

// Resumo trata GET /estatisticas
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	resumo, err := h.Repo.Calcular()
	if err != nil {
		h.Logger.Error("erro ao calcular estatísticas", zap.Error(err))
		http.Error(w, "Erro ao carregar estatísticas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo)
}
