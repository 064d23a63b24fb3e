package auditoria

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/validador"
)

type Handler struct {
	Repo   *Repository
	Logger *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{Repo: NewRepository(db), Logger: logger}
}

// Listar trata GET /auditoria (somente admin).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	registros, err := h.Repo.ListarTodos()
	if err != nil {
		h.Logger.Error("erro ao listar auditoria", zap.Error(err))
		http.Error(w, "Erro ao carregar auditoria", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(registros)
}

// ExportarCSV trata GET /auditoria/exportar: baixa a lista completa como CSV
// com nome de arquivo datado.
func (h *Handler) ExportarCSV(w http.ResponseWriter, r *http.Request) {
	registros, err := h.Repo.ListarTodos()
	if err != nil {
		h.Logger.Error("erro ao exportar auditoria", zap.Error(err))
		http.Error(w, "Erro ao exportar auditoria", http.StatusInternalServerError)
		return
	}

	nomeArquivo := fmt.Sprintf("auditoria-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+nomeArquivo+`"`)

	escritor := csv.NewWriter(w)
	_ = escritor.Write([]string{
		"Empresa", "CNPJ", "Contatos excluídos", "Logs excluídos",
		"Excluído por", "Excluído em", "Razão social", "Endereço",
		"Telefone", "E-mail", "Site",
	})
	for _, reg := range registros {
		_ = escritor.Write([]string{
			reg.EmpresaNome,
			validador.FormatarCNPJ(reg.EmpresaCNPJ),
			strconv.Itoa(reg.ContatosExcluidos),
			strconv.Itoa(reg.LogsExcluidos),
			reg.UsuarioEmail,
			reg.ExcluidoEm.Format("02/01/2006 15:04"),
			reg.RazaoSocial,
			reg.Endereco,
			reg.Telefone,
			reg.Email,
			reg.Site,
		})
	}
	escritor.Flush()
	if err := escritor.Error(); err != nil {
		h.Logger.Error("erro ao escrever CSV de auditoria", zap.Error(err))
	}
}
