package exportacao

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{Service: NewService(db), Logger: logger}
}

// ExportarProcessos trata GET /exportacao/processos: baixa o XLSX com uma
// aba por processo e nome de arquivo datado.
func (h *Handler) ExportarProcessos(w http.ResponseWriter, r *http.Request) {
	arquivo, err := h.Service.GerarXLSX()
	if err != nil {
		h.Logger.Error("erro ao gerar planilha", zap.Error(err))
		http.Error(w, "Erro ao exportar processos", http.StatusInternalServerError)
		return
	}
	defer arquivo.Close()

	nomeArquivo := fmt.Sprintf("processos-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+nomeArquivo+`"`)

	if err := arquivo.Write(w); err != nil {
		h.Logger.Error("erro ao enviar planilha", zap.Error(err))
	}
}
