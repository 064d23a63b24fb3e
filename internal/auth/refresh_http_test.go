package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	banco, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}
	if err := banco.AutoMigrate(&RefreshToken{}); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	return banco
}

func cookieDeRefresh(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == RefreshCookie {
			return c
		}
	}
	t.Fatal("cookie de refresh não foi emitido")
	return nil
}

func emitirLogin(t *testing.T, banco *gorm.DB) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	access, err := IssueTokensOnLogin(banco, rec, 1, "admin@exemplo.com.br", true)
	if err != nil {
		t.Fatalf("erro ao emitir tokens: %v", err)
	}
	if access == "" {
		t.Fatal("access token vazio")
	}
	return cookieDeRefresh(t, rec)
}

func TestRefreshRotacionaERejeitaReuso(t *testing.T) {
	banco := abrirBanco(t)
	antigo := emitirLogin(t, banco)
	handler := RefreshHTTPHandler(banco)

	// 1ª troca: o refresh atual vira um novo par
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(antigo)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("rotação deveria dar 200, veio %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "access_token") {
		t.Errorf("resposta sem access_token: %s", rec.Body.String())
	}
	novo := cookieDeRefresh(t, rec)
	if novo.Value == antigo.Value {
		t.Error("rotação deveria emitir um refresh diferente")
	}

	// o antigo foi revogado; reusar é 401
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(antigo)
	rec = httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("reuso do refresh antigo deveria dar 401, veio %d", rec.Code)
	}

	// o novo segue válido
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(novo)
	rec = httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("refresh rotacionado deveria seguir válido, veio %d", rec.Code)
	}
}

func TestRefreshRejeitaTokenExpirado(t *testing.T) {
	banco := abrirBanco(t)

	raw := "refresh-vencido"
	rt := RefreshToken{
		UserID:    1,
		Email:     "admin@exemplo.com.br",
		FamilyID:  "fam-1",
		Hash:      hashRaw(raw),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := banco.Create(&rt).Error; err != nil {
		t.Fatalf("erro ao semear refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: raw})
	rec := httptest.NewRecorder()
	RefreshHTTPHandler(banco)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh expirado deveria dar 401, veio %d", rec.Code)
	}
}

func TestRefreshSemCookie(t *testing.T) {
	banco := abrirBanco(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	rec := httptest.NewRecorder()
	RefreshHTTPHandler(banco)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh sem cookie deveria dar 401, veio %d", rec.Code)
	}
}

func TestLogoutRevogaORefresh(t *testing.T) {
	banco := abrirBanco(t)
	cookie := emitirLogin(t, banco)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	LogoutHTTPHandler(banco)(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout deveria dar 204, veio %d", rec.Code)
	}

	var rt RefreshToken
	if err := banco.Where("hash = ?", hashRaw(cookie.Value)).First(&rt).Error; err != nil {
		t.Fatalf("refresh sumiu do banco: %v", err)
	}
	if rt.RevokedAt == nil {
		t.Error("logout deveria revogar o refresh")
	}

	limpou := cookieDeRefresh(t, rec)
	if limpou.MaxAge >= 0 && limpou.Value != "" {
		t.Error("logout deveria limpar o cookie")
	}

	// depois do logout o refresh não serve mais
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	RefreshHTTPHandler(banco)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh revogado deveria dar 401, veio %d", rec.Code)
	}
}
