package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/notificacao"
	"github.com/nucleogestao/api-processos/internal/utils"
	"github.com/nucleogestao/api-processos/internal/validador"
)

// Handler encapsula DB, repository e o validador de payloads.
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

// Registrar cadastra um novo usuário. POST /registrar
// O perfil é sempre forçado para admin (regra do sistema).
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req RegistrarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.BuscarPorEmail(h.DB, req.Email); err == nil {
		http.Error(w, "E-mail já cadastrado", http.StatusConflict)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:     req.Nome,
		Email:    req.Email,
		Perfil:   "admin",
		Telefone: validador.FormatarTelefone(req.Telefone),
		Endereco: req.Endereco,
		Senha:    hash,
	}
	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		h.Logger.Error("erro ao salvar usuário", zap.Error(err))
		http.Error(w, "Erro ao cadastrar usuário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// Login valida as credenciais e emite o par access+refresh. POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, "Senha incorreta", http.StatusUnauthorized)
		return
	}

	access, err := auth.IssueTokensOnLogin(h.DB, w, u.ID, u.Email, u.IsAdmin())
	if err != nil {
		h.Logger.Error("erro ao emitir tokens", zap.Error(err))
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token":                 access,
		"precisaRedefinirSenha": u.PrecisaRedefinirSenha,
		"usuario":               u,
	})
}

// Reautenticar confere a senha atual do usuário logado antes de operações
// destrutivas. POST /auth/reautenticar
// A mensagem distingue senha incorreta de usuário inexistente.
func (h *Handler) Reautenticar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	var req ReautenticarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, "Senha incorreta", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RedefinirSenha gera uma senha temporária, grava com a flag de redefinição
// obrigatória e entrega via webhook. POST /auth/redefinir-senha
func (h *Handler) RedefinirSenha(w http.ResponseWriter, r *http.Request) {
	var req RedefinirSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		// Não revela se o e-mail existe
		w.WriteHeader(http.StatusOK)
		return
	}

	senhaTemporaria, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "Erro ao gerar senha temporária", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(senhaTemporaria)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.AtualizarSenha(h.DB, u.ID, hash, true); err != nil {
		h.Logger.Error("erro ao redefinir senha", zap.Error(err), zap.Uint("usuario", u.ID))
		http.Error(w, "Erro ao redefinir senha", http.StatusInternalServerError)
		return
	}

	if err := notificacao.EnviarSenhaTemporaria(u.Email, senhaTemporaria); err != nil {
		h.Logger.Warn("webhook de senha temporária falhou", zap.Error(err))
	}
	w.WriteHeader(http.StatusOK)
}

// AlterarSenha troca a senha do usuário logado exigindo a senha atual.
// PUT /auth/senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	var req AlterarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.SenhaAtual) {
		http.Error(w, "Senha incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.AtualizarSenha(h.DB, u.ID, hash, false); err != nil {
		h.Logger.Error("erro ao alterar senha", zap.Error(err), zap.Uint("usuario", u.ID))
		http.Error(w, "Erro ao alterar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Me devolve o perfil do usuário logado. GET /usuarios/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	u, err := h.Repository.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// AtualizarMe altera nome/telefone/endereço do usuário logado. PUT /usuarios/me
// A troca de senha fica em rota própria: o sucesso do perfil é reportado
// independentemente de uma falha posterior na senha.
func (h *Handler) AtualizarMe(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	var req AtualizarPerfilRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}

	u.Nome = req.Nome
	u.Telefone = validador.FormatarTelefone(req.Telefone)
	u.Endereco = req.Endereco
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		h.Logger.Error("erro ao atualizar perfil", zap.Error(err), zap.Uint("usuario", u.ID))
		http.Error(w, "Erro ao atualizar perfil", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Listar devolve todos os usuários. GET /usuarios (admin)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		h.Logger.Error("erro ao listar usuários", zap.Error(err))
		http.Error(w, "Erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(usuarios)
}
