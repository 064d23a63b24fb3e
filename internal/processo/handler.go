package processo

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
	"github.com/nucleogestao/api-processos/internal/historico"
	"github.com/nucleogestao/api-processos/internal/validador"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Historico  *historico.Repository
	Validate   *validator.Validate
	Logger     *zap.Logger
}

func NewHandler(db *gorm.DB, validate *validator.Validate, logger *zap.Logger) *Handler {
	trilha := historico.NewRepository(db)
	return &Handler{
		DB:         db,
		Repository: NewRepository(trilha),
		Historico:  trilha,
		Validate:   validate,
		Logger:     logger,
	}
}

// EntradaHistoricoView é a entrada da trilha já pronta para exibição:
// diff genérico para created/updated/status_changed, resumo para andamentos.
type EntradaHistoricoView struct {
	historico.Historico
	Mudancas []historico.Mudanca `json:"mudancas,omitempty"`
	Resumo   []historico.Linha   `json:"resumo,omitempty"`
}

// Criar trata POST /processos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarProcessoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}
	dataOcorrencia, err := validador.ParseData(req.DataOcorrencia)
	if err != nil {
		http.Error(w, "Data da ocorrência inválida", http.StatusBadRequest)
		return
	}

	// Defaults quando o formulário não escolhe
	if req.Status == "" {
		req.Status = StatusPendente
	}
	if req.Prioridade == "" {
		req.Prioridade = PrioridadeMedia
	}

	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)
	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)

	p := Processo{
		Titulo:         req.Titulo,
		Descricao:      req.Descricao,
		DataOcorrencia: dataOcorrencia,
		Local:          req.Local,
		Status:         req.Status,
		Prioridade:     req.Prioridade,
		Responsavel:    req.Responsavel,
		CriadoPor:      usuarioID,
		AtualizadoPor:  usuarioEmail,
	}
	if err := h.Repository.CriarComHistorico(h.DB, &p); err != nil {
		h.Logger.Error("erro ao criar processo", zap.Error(err))
		http.Error(w, "Erro ao salvar processo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// Listar trata GET /processos. Aceita filtros opcionais ?status= e ?prioridade=.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	consulta := h.DB.Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		consulta = consulta.Where("status = ?", status)
	}
	if prioridade := r.URL.Query().Get("prioridade"); prioridade != "" {
		consulta = consulta.Where("prioridade = ?", prioridade)
	}

	var processos []Processo
	if err := consulta.Find(&processos).Error; err != nil {
		h.Logger.Error("erro ao listar processos", zap.Error(err))
		http.Error(w, "Erro ao listar processos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(processos)
}

// BuscarPorID trata GET /processos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Atualizar trata PUT /processos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req AtualizarProcessoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}
	dataOcorrencia, err := validador.ParseData(req.DataOcorrencia)
	if err != nil {
		http.Error(w, "Data da ocorrência inválida", http.StatusBadRequest)
		return
	}

	atual, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)
	novo := *atual
	novo.Titulo = req.Titulo
	novo.Descricao = req.Descricao
	novo.DataOcorrencia = dataOcorrencia
	novo.Local = req.Local
	novo.Status = req.Status
	novo.Prioridade = req.Prioridade
	novo.Responsavel = req.Responsavel
	novo.AtualizadoPor = usuarioEmail

	if err := h.Repository.AtualizarComHistorico(h.DB, atual, &novo); err != nil {
		h.Logger.Error("erro ao atualizar processo", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao atualizar processo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(novo)
}

// RegistrarAndamento trata POST /processos/{id}/andamentos
func (h *Handler) RegistrarAndamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req AndamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, validador.MensagemDeErro(err), http.StatusBadRequest)
		return
	}
	data, err := validador.ParseData(req.Data)
	if err != nil {
		http.Error(w, "Data do andamento inválida", http.StatusBadRequest)
		return
	}

	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)
	p, err := h.Repository.RegistrarAndamento(h.DB, uint(id), req, data, usuarioEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Processo não encontrado", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao registrar andamento", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao registrar andamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// ListarHistorico trata GET /processos/{id}/historico
// Devolve a trilha mais recente primeiro, já com diff/resumo calculados.
func (h *Handler) ListarHistorico(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, uint(id)); err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	entradas, err := h.Historico.ListarPorProcesso(uint(id))
	if err != nil {
		h.Logger.Error("erro ao listar histórico", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao carregar histórico", http.StatusInternalServerError)
		return
	}

	views := make([]EntradaHistoricoView, 0, len(entradas))
	for _, entrada := range entradas {
		view := EntradaHistoricoView{Historico: entrada}
		if entrada.Acao == historico.AcaoAndamento {
			view.Resumo = historico.ResumoAndamento(entrada.ValoresNovos, entrada.Observacao)
		} else {
			view.Mudancas = historico.CalcularMudancas(entrada.ValoresAntigos, entrada.ValoresNovos)
		}
		views = append(views, view)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

// Excluir trata DELETE /processos/{id}
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.ExcluirComHistorico(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Processo não encontrado", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao excluir processo", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao excluir processo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
