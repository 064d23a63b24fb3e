package contato

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/validador"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Validate   *validator.Validate
	Logger     *zap.Logger
}

func NewHandler(db *gorm.DB, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Validate:   validate,
		Logger:     logger,
	}
}

func (h *Handler) montar(r *http.Request, destino *Contato, req ContatoRequest) {
	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)

	destino.EmpresaID = req.EmpresaID
	destino.Nome = req.Nome
	destino.Cargo = req.Cargo
	destino.Departamento = req.Departamento
	destino.Telefone = validador.FormatarTelefone(req.Telefone)
	destino.Celular = validador.FormatarTelefone(req.Celular)
	destino.Email = req.Email
	destino.Principal = req.Principal
	destino.Observacoes = req.Observacoes
	destino.AtualizadoPor = usuarioEmail
}

// Criar trata POST /contatos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ContatoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)
	var c Contato
	h.montar(r, &c, req)
	c.CriadoPor = usuarioID

	if err := h.Repository.SalvarComPrincipalUnico(h.DB, &c); err != nil {
		h.Logger.Error("erro ao salvar contato", zap.Error(err))
		http.Error(w, "Erro ao salvar contato", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// BuscarPorID trata GET /contatos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contato não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// ListarPorEmpresa trata GET /empresas/{id}/contatos
func (h *Handler) ListarPorEmpresa(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	contatos, err := h.Repository.ListarPorEmpresa(h.DB, uint(empresaID))
	if err != nil {
		h.Logger.Error("erro ao listar contatos", zap.Error(err), zap.Int("empresa", empresaID))
		http.Error(w, "Erro ao listar contatos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contatos)
}

// Atualizar trata PUT /contatos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req ContatoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contato não encontrado", http.StatusNotFound)
		return
	}
	// mover o contato de empresa quebraria os logs que o referenciam
	if req.EmpresaID != c.EmpresaID {
		http.Error(w, "Contato não pode mudar de empresa", http.StatusUnprocessableEntity)
		return
	}
	h.montar(r, c, req)

	if err := h.Repository.SalvarComPrincipalUnico(h.DB, c); err != nil {
		h.Logger.Error("erro ao atualizar contato", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao atualizar contato", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Excluir trata DELETE /contatos/{id}
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Excluir(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Contato não encontrado", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao excluir contato", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao excluir contato", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
