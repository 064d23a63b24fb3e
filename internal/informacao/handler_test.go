package informacao

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/contato"
	"github.com/nucleogestao/api-processos/internal/storage"
	"github.com/nucleogestao/api-processos/internal/validador"
)

func novoHandler(t *testing.T) (*Handler, *storage.Memoria) {
	t.Helper()
	banco, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}
	if err := banco.AutoMigrate(&Informacao{}, &contato.Contato{}); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	validate := validator.New()
	if err := validador.RegistrarTags(validate); err != nil {
		t.Fatalf("erro ao registrar validações: %v", err)
	}
	memoria := storage.NewMemoria()
	return NewHandler(banco, memoria, validate, zap.NewNop()), memoria
}

func comIdentidade(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), auth.CtxUsuarioID, uint(1))
	ctx = context.WithValue(ctx, auth.CtxUsuarioEmail, "admin@exemplo.com.br")
	return req.WithContext(ctx)
}

func semearInformacao(t *testing.T, h *Handler) *Informacao {
	t.Helper()
	info := Informacao{
		EmpresaID:  1,
		Titulo:     "Visita técnica",
		Descricao:  "registro de visita",
		Relevancia: RelevanciaMedia,
		Anexos:     []string{},
	}
	if err := h.Repo.Criar(&info); err != nil {
		t.Fatalf("erro ao semear informação: %v", err)
	}
	return &info
}

func TestCriarRejeitaContatoDeOutraEmpresa(t *testing.T) {
	h, _ := novoHandler(t)

	alheio := contato.Contato{EmpresaID: 2, Nome: "Zé", Email: "ze@exemplo.com.br"}
	if err := h.Repo.DB.Create(&alheio).Error; err != nil {
		t.Fatalf("erro ao semear contato: %v", err)
	}

	corpo, _ := json.Marshal(map[string]interface{}{
		"empresaId":      1,
		"contatoId":      alheio.ID,
		"titulo":         "Reunião",
		"descricao":      "ata",
		"relevancia":     "alta",
		"dataOcorrencia": "2024-03-01",
	})
	req := httptest.NewRequest(http.MethodPost, "/informacoes", bytes.NewReader(corpo))
	w := httptest.NewRecorder()
	h.Criar(w, comIdentidade(req))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("contato de outra empresa deveria dar 422, veio %d: %s", w.Code, w.Body.String())
	}
}

func TestListarTodasAsInformacoes(t *testing.T) {
	h, _ := novoHandler(t)
	_ = semearInformacao(t, h)
	outra := Informacao{
		EmpresaID:  2,
		Titulo:     "Ligação de retorno",
		Descricao:  "follow-up",
		Relevancia: RelevanciaAlta,
		Anexos:     []string{},
	}
	if err := h.Repo.Criar(&outra); err != nil {
		t.Fatalf("erro ao semear informação: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/informacoes", nil)
	w := httptest.NewRecorder()
	h.Listar(w, comIdentidade(req))

	if w.Code != http.StatusOK {
		t.Fatalf("listagem deveria dar 200, veio %d: %s", w.Code, w.Body.String())
	}
	var logs []Informacao
	if err := json.Unmarshal(w.Body.Bytes(), &logs); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("esperadas 2 informações, vieram %d", len(logs))
	}
}

func TestEnviarERemoverAnexo(t *testing.T) {
	h, memoria := novoHandler(t)
	info := semearInformacao(t, h)

	var corpo bytes.Buffer
	escritor := multipart.NewWriter(&corpo)
	parte, err := escritor.CreateFormFile("arquivo", "laudo.pdf")
	if err != nil {
		t.Fatalf("erro ao montar multipart: %v", err)
	}
	_, _ = parte.Write([]byte("%PDF-1.4 conteudo"))
	_ = escritor.Close()

	req := httptest.NewRequest(http.MethodPost, "/informacoes/1/anexos", &corpo)
	req.Header.Set("Content-Type", escritor.FormDataContentType())
	req = mux.SetURLVars(comIdentidade(req), map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	h.EnviarAnexo(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("upload deveria dar 201, veio %d: %s", w.Code, w.Body.String())
	}
	var resposta map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resposta); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	chave := resposta["chave"]
	if chave == "" {
		t.Fatal("upload não devolveu a chave")
	}
	if _, ok := memoria.Arquivos[chave]; !ok {
		t.Error("arquivo não chegou ao armazenamento")
	}

	recarregada, err := h.Repo.BuscarPorID(info.ID)
	if err != nil {
		t.Fatalf("erro ao recarregar: %v", err)
	}
	if len(recarregada.Anexos) != 1 || recarregada.Anexos[0] != chave {
		t.Errorf("chave não registrada nos anexos: %+v", recarregada.Anexos)
	}

	// Remoção
	req = httptest.NewRequest(http.MethodDelete, "/informacoes/1/anexos/"+url.PathEscape(chave), nil)
	req = mux.SetURLVars(comIdentidade(req), map[string]string{"id": "1", "chave": chave})
	w = httptest.NewRecorder()
	h.RemoverAnexo(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("remoção deveria dar 204, veio %d: %s", w.Code, w.Body.String())
	}
	if _, ok := memoria.Arquivos[chave]; ok {
		t.Error("arquivo continua no armazenamento")
	}
	recarregada, _ = h.Repo.BuscarPorID(info.ID)
	if len(recarregada.Anexos) != 0 {
		t.Errorf("anexos deveriam ficar vazios: %+v", recarregada.Anexos)
	}
}
