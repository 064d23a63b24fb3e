package empresa

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/auditoria"
	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/usuario"
	"github.com/nucleogestao/api-processos/internal/utils"
	"github.com/nucleogestao/api-processos/internal/validador"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Usuarios   usuario.Repository
	Validate   *validator.Validate
	Logger     *zap.Logger
}

func NewHandler(db *gorm.DB, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(auditoria.NewRepository(db)),
		Usuarios:   usuario.NewRepository(),
		Validate:   validate,
		Logger:     logger,
	}
}

func (h *Handler) montar(r *http.Request, destino *Empresa, req EmpresaRequest) {
	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)

	destino.CNPJ = validador.NormalizarCNPJ(req.CNPJ)
	destino.RazaoSocial = req.RazaoSocial
	destino.NomeFantasia = req.NomeFantasia
	destino.Logradouro = req.Logradouro
	destino.Numero = req.Numero
	destino.Complemento = req.Complemento
	destino.Bairro = req.Bairro
	destino.Cidade = req.Cidade
	destino.UF = req.UF
	destino.CEP = validador.FormatarCEP(req.CEP)
	destino.Telefone = validador.FormatarTelefone(req.Telefone)
	destino.Email = req.Email
	destino.Site = req.Site
	destino.Observacoes = req.Observacoes
	destino.AtualizadoPor = usuarioEmail
}

// Criar trata POST /empresas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req EmpresaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	cnpj := validador.NormalizarCNPJ(req.CNPJ)
	if _, err := h.Repository.BuscarPorCNPJ(h.DB, cnpj); err == nil {
		http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
		return
	}

	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)
	var e Empresa
	h.montar(r, &e, req)
	e.CriadoPor = usuarioID

	if err := h.Repository.Salvar(h.DB, &e); err != nil {
		// a checagem prévia não cobre duas requisições simultâneas; o índice
		// único cobre
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
			return
		}
		h.Logger.Error("erro ao salvar empresa", zap.Error(err))
		http.Error(w, "Erro ao salvar empresa", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e)
}

// Listar trata GET /empresas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	empresas, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		h.Logger.Error("erro ao listar empresas", zap.Error(err))
		http.Error(w, "Erro ao listar empresas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(empresas)
}

// BuscarPorID trata GET /empresas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(e)
}

// Atualizar trata PUT /empresas/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req EmpresaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	// CNPJ só pode colidir com outra empresa
	cnpj := validador.NormalizarCNPJ(req.CNPJ)
	if existente, err := h.Repository.BuscarPorCNPJ(h.DB, cnpj); err == nil && existente.ID != e.ID {
		http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
		return
	}

	h.montar(r, e, req)
	if err := h.Repository.Salvar(h.DB, e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
			return
		}
		h.Logger.Error("erro ao atualizar empresa", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao atualizar empresa", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(e)
}

// Excluir trata DELETE /empresas/{id}, corpo {"senha": "..."}.
// Reautentica com a senha atual antes de qualquer exclusão; a falha de senha
// é reportada separada das falhas de exclusão e nada é apagado.
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req ExcluirEmpresaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)
	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)

	// Reautenticação obrigatória antes da operação destrutiva
	u, err := h.Usuarios.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, "Senha incorreta", http.StatusUnauthorized)
		return
	}

	registro, err := h.Repository.ExcluirComAuditoria(h.DB, uint(id), usuarioID, usuarioEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Empresa não encontrada", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao excluir empresa", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao excluir empresa", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("empresa excluída",
		zap.Uint("empresa", registro.EmpresaID),
		zap.Int("contatos", registro.ContatosExcluidos),
		zap.Int("logs", registro.LogsExcluidos),
		zap.String("por", usuarioEmail),
	)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(registro)
}
