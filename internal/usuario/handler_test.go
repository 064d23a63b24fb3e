package usuario

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/validador"
)

func novoHandler(t *testing.T) *Handler {
	t.Helper()
	banco, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}
	if err := banco.AutoMigrate(&Usuario{}, &auth.RefreshToken{}); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	validate := validator.New()
	if err := validador.RegistrarTags(validate); err != nil {
		t.Fatalf("erro ao registrar validações: %v", err)
	}
	return NewHandler(banco, validate, zap.NewNop())
}

func registrar(t *testing.T, h *Handler, corpo string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/registrar", strings.NewReader(corpo))
	w := httptest.NewRecorder()
	h.Registrar(w, req)
	return w
}

func TestRegistrarForcaPerfilAdmin(t *testing.T) {
	h := novoHandler(t)

	w := registrar(t, h, `{"nome":"Ana","email":"ana@exemplo.com.br","senha":"segredo1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d: %s", w.Code, w.Body.String())
	}

	var salvo Usuario
	if err := json.Unmarshal(w.Body.Bytes(), &salvo); err != nil {
		t.Fatalf("resposta ilegível: %v", err)
	}
	if salvo.Perfil != "admin" {
		t.Errorf("perfil deveria ser forçado para admin, veio %q", salvo.Perfil)
	}
	if strings.Contains(w.Body.String(), "segredo1") {
		t.Error("senha não pode aparecer na resposta")
	}
}

func TestRegistrarSenhaFraca(t *testing.T) {
	h := novoHandler(t)
	w := registrar(t, h, `{"nome":"Ana","email":"ana@exemplo.com.br","senha":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("senha curta deveria dar 400, veio %d", w.Code)
	}
}

func TestRegistrarEmailDuplicado(t *testing.T) {
	h := novoHandler(t)
	registrar(t, h, `{"nome":"Ana","email":"ana@exemplo.com.br","senha":"segredo1"}`)

	w := registrar(t, h, `{"nome":"Outra","email":"ana@exemplo.com.br","senha":"segredo2"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("e-mail duplicado deveria dar 409, veio %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	h := novoHandler(t)
	registrar(t, h, `{"nome":"Ana","email":"ana@exemplo.com.br","senha":"segredo1"}`)

	casos := []struct {
		nome     string
		corpo    string
		status   int
		mensagem string
	}{
		{"credenciais corretas", `{"email":"ana@exemplo.com.br","senha":"segredo1"}`, http.StatusOK, ""},
		{"senha errada", `{"email":"ana@exemplo.com.br","senha":"errada0"}`, http.StatusUnauthorized, "Senha incorreta"},
		{"usuário inexistente", `{"email":"ze@exemplo.com.br","senha":"segredo1"}`, http.StatusUnauthorized, "Usuário não encontrado"},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(c.corpo))
			w := httptest.NewRecorder()
			h.Login(w, req)

			if w.Code != c.status {
				t.Fatalf("esperava %d, veio %d: %s", c.status, w.Code, w.Body.String())
			}
			if c.mensagem != "" && !strings.Contains(w.Body.String(), c.mensagem) {
				t.Errorf("mensagem esperada %q, veio %s", c.mensagem, w.Body.String())
			}
			if c.status == http.StatusOK && !strings.Contains(w.Body.String(), "token") {
				t.Error("login não devolveu token")
			}
		})
	}
}

func comIdentidade(req *http.Request, id uint, email string) *http.Request {
	ctx := context.WithValue(req.Context(), auth.CtxUsuarioID, id)
	ctx = context.WithValue(ctx, auth.CtxUsuarioEmail, email)
	return req.WithContext(ctx)
}

func TestReautenticar(t *testing.T) {
	h := novoHandler(t)
	registrar(t, h, `{"nome":"Ana","email":"ana@exemplo.com.br","senha":"segredo1"}`)

	var ana Usuario
	if err := h.DB.Where("email = ?", "ana@exemplo.com.br").First(&ana).Error; err != nil {
		t.Fatalf("usuário não foi criado: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/reautenticar", strings.NewReader(`{"senha":"segredo1"}`))
	w := httptest.NewRecorder()
	h.Reautenticar(w, comIdentidade(req, ana.ID, ana.Email))
	if w.Code != http.StatusOK {
		t.Errorf("senha correta deveria dar 200, veio %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/reautenticar", strings.NewReader(`{"senha":"errada0"}`))
	w = httptest.NewRecorder()
	h.Reautenticar(w, comIdentidade(req, ana.ID, ana.Email))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("senha errada deveria dar 401, veio %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Senha incorreta") {
		t.Errorf("mensagem específica de senha esperada, veio %s", w.Body.String())
	}
}

func TestAlterarSenha(t *testing.T) {
	h := novoHandler(t)
	registrar(t, h, `{"nome":"Ana","email":"ana@exemplo.com.br","senha":"segredo1"}`)

	var ana Usuario
	if err := h.DB.Where("email = ?", "ana@exemplo.com.br").First(&ana).Error; err != nil {
		t.Fatalf("usuário não foi criado: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/auth/senha",
		strings.NewReader(`{"senhaAtual":"segredo1","novaSenha":"novosegredo"}`))
	w := httptest.NewRecorder()
	h.AlterarSenha(w, comIdentidade(req, ana.ID, ana.Email))
	if w.Code != http.StatusOK {
		t.Fatalf("troca válida deveria dar 200, veio %d: %s", w.Code, w.Body.String())
	}

	// A senha antiga deixa de valer
	req = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ana@exemplo.com.br","senha":"segredo1"}`))
	w = httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("senha antiga ainda vale: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ana@exemplo.com.br","senha":"novosegredo"}`))
	w = httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("senha nova não vale: %d %s", w.Code, w.Body.String())
	}
}
