package informacao

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/storage"
	"github.com/nucleogestao/api-processos/internal/validador"
)

// Limite de upload de anexo: 10 MB.
const tamanhoMaximoAnexo = 10 << 20

type Handler struct {
	Repo     *Repository
	Storage  storage.Client
	Validate *validator.Validate
	Logger   *zap.Logger
}

func NewHandler(db *gorm.DB, armazenamento storage.Client, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{
		Repo:     NewRepository(db),
		Storage:  armazenamento,
		Validate: validate,
		Logger:   logger,
	}
}

func (h *Handler) validarVinculoContato(req InformacaoRequest) (int, string) {
	if req.ContatoID == nil || *req.ContatoID == 0 {
		return 0, ""
	}
	pertence, err := h.Repo.ContatoPertenceAEmpresa(*req.ContatoID, req.EmpresaID)
	if err != nil {
		return http.StatusInternalServerError, "Erro ao validar contato"
	}
	if !pertence {
		return http.StatusUnprocessableEntity, "Contato não pertence à empresa informada"
	}
	return 0, ""
}

// Criar trata POST /informacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req InformacaoRequest
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
	if status, mensagem := h.validarVinculoContato(req); status != 0 {
		http.Error(w, mensagem, status)
		return
	}

	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)
	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)

	info := Informacao{
		EmpresaID:      req.EmpresaID,
		ContatoID:      req.ContatoID,
		Titulo:         req.Titulo,
		Descricao:      req.Descricao,
		Relevancia:     req.Relevancia,
		Categoria:      req.Categoria,
		DataOcorrencia: dataOcorrencia,
		Anexos:         []string{},
		CriadoPor:      usuarioID,
		AtualizadoPor:  usuarioEmail,
	}
	if err := h.Repo.Criar(&info); err != nil {
		h.Logger.Error("erro ao salvar informação", zap.Error(err))
		http.Error(w, "Erro ao salvar informação", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(info)
}

// BuscarPorID trata GET /informacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	info, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Informação não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// Listar trata GET /informacoes, a linha do tempo de todas as empresas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Repo.ListarTodas()
	if err != nil {
		h.Logger.Error("erro ao listar informações", zap.Error(err))
		http.Error(w, "Erro ao listar informações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(logs)
}

// ListarPorEmpresa trata GET /empresas/{id}/informacoes
func (h *Handler) ListarPorEmpresa(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	logs, err := h.Repo.ListarPorEmpresa(uint(empresaID))
	if err != nil {
		h.Logger.Error("erro ao listar informações", zap.Error(err), zap.Int("empresa", empresaID))
		http.Error(w, "Erro ao listar informações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(logs)
}

// Atualizar trata PUT /informacoes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req InformacaoRequest
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
	if status, mensagem := h.validarVinculoContato(req); status != 0 {
		http.Error(w, mensagem, status)
		return
	}

	info, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Informação não encontrada", http.StatusNotFound)
		return
	}

	usuarioEmail := r.Context().Value(auth.CtxUsuarioEmail).(string)
	info.EmpresaID = req.EmpresaID
	info.ContatoID = req.ContatoID
	info.Titulo = req.Titulo
	info.Descricao = req.Descricao
	info.Relevancia = req.Relevancia
	info.Categoria = req.Categoria
	info.DataOcorrencia = dataOcorrencia
	info.AtualizadoPor = usuarioEmail

	if err := h.Repo.Salvar(info); err != nil {
		h.Logger.Error("erro ao atualizar informação", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao atualizar informação", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// Excluir trata DELETE /informacoes/{id}
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Excluir(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Informação não encontrada", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao excluir informação", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao excluir informação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EnviarAnexo trata POST /informacoes/{id}/anexos (multipart, campo "arquivo").
// O upload vai para o bucket sob informacoes/ e a chave entra na lista.
func (h *Handler) EnviarAnexo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	info, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Informação não encontrada", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(tamanhoMaximoAnexo); err != nil {
		http.Error(w, "Arquivo muito grande ou formulário inválido", http.StatusBadRequest)
		return
	}
	arquivo, cabecalho, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "Campo 'arquivo' ausente", http.StatusBadRequest)
		return
	}
	defer arquivo.Close()

	dados, err := io.ReadAll(io.LimitReader(arquivo, tamanhoMaximoAnexo))
	if err != nil {
		http.Error(w, "Erro ao ler arquivo", http.StatusInternalServerError)
		return
	}

	chave, err := h.Storage.Enviar(r.Context(), "informacoes", cabecalho.Filename, dados)
	if err != nil {
		h.Logger.Error("erro ao enviar anexo", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao enviar anexo", http.StatusInternalServerError)
		return
	}

	info.Anexos = append(info.Anexos, chave)
	if err := h.Repo.Salvar(info); err != nil {
		h.Logger.Error("erro ao registrar anexo", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao registrar anexo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"chave": chave,
		"url":   h.Storage.URL(chave),
	})
}

// RemoverAnexo trata DELETE /informacoes/{id}/anexos/{chave}
// A chave chega URL-encodada por conter barras.
func (h *Handler) RemoverAnexo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	chave := vars["chave"]

	info, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Informação não encontrada", http.StatusNotFound)
		return
	}

	indice := -1
	for i, existente := range info.Anexos {
		if existente == chave {
			indice = i
			break
		}
	}
	if indice < 0 {
		http.Error(w, "Anexo não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Storage.Remover(r.Context(), chave); err != nil {
		h.Logger.Error("erro ao remover anexo do bucket", zap.Error(err), zap.String("chave", chave))
		http.Error(w, "Erro ao remover anexo", http.StatusInternalServerError)
		return
	}

	info.Anexos = append(info.Anexos[:indice], info.Anexos[indice+1:]...)
	if err := h.Repo.Salvar(info); err != nil {
		h.Logger.Error("erro ao atualizar anexos", zap.Error(err), zap.Int("id", id))
		http.Error(w, "Erro ao atualizar anexos", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
