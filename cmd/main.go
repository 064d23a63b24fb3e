package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/nucleogestao/api-processos/internal/auditoria"
	"github.com/nucleogestao/api-processos/internal/auth"
	"github.com/nucleogestao/api-processos/internal/contato"
	"github.com/nucleogestao/api-processos/internal/empresa"
	"github.com/nucleogestao/api-processos/internal/estatisticas"
	"github.com/nucleogestao/api-processos/internal/exportacao"
	"github.com/nucleogestao/api-processos/internal/historico"
	"github.com/nucleogestao/api-processos/internal/informacao"
	"github.com/nucleogestao/api-processos/internal/observabilidade"
	"github.com/nucleogestao/api-processos/internal/processo"
	"github.com/nucleogestao/api-processos/internal/storage"
	"github.com/nucleogestao/api-processos/internal/usuario"
	"github.com/nucleogestao/api-processos/internal/utils/db"
	"github.com/nucleogestao/api-processos/internal/validador"
	"github.com/nucleogestao/api-processos/internal/viacep"
)

func main() {
	_ = godotenv.Load()

	logger := observabilidade.NewLogger(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	banco, err := db.GetDB()
	if err != nil {
		logger.Fatal("erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := banco.AutoMigrate(
		&usuario.Usuario{},
		&auth.RefreshToken{},
		&processo.Processo{},
		&historico.Historico{},
		&empresa.Empresa{},
		&contato.Contato{},
		&informacao.Informacao{},
		&auditoria.RegistroAuditoria{},
	); err != nil {
		logger.Fatal("erro no AutoMigrate", zap.Error(err))
	}

	validate := validator.New()
	if err := validador.RegistrarTags(validate); err != nil {
		logger.Fatal("erro ao registrar validações", zap.Error(err))
	}

	// Sem bucket configurado os anexos ficam em memória (só desenvolvimento)
	var anexos storage.Client
	if os.Getenv("S3_BUCKET_NAME") != "" {
		anexos, err = storage.NewS3Client(context.Background())
		if err != nil {
			logger.Fatal("erro ao configurar S3", zap.Error(err))
		}
	} else {
		logger.Warn("S3_BUCKET_NAME não definido, anexos em memória")
		anexos = storage.NewMemoria()
	}

	metrics := observabilidade.NewMetrics()

	// Handlers
	usuarioHandler := usuario.NewHandler(banco, validate, logger)
	processoHandler := processo.NewHandler(banco, validate, logger)
	empresaHandler := empresa.NewHandler(banco, validate, logger)
	contatoHandler := contato.NewHandler(banco, validate, logger)
	informacaoHandler := informacao.NewHandler(banco, anexos, validate, logger)
	auditoriaHandler := auditoria.NewHandler(banco, logger)
	estatisticasHandler := estatisticas.NewHandler(banco, logger)
	exportacaoHandler := exportacao.NewHandler(banco, logger)
	viacepHandler := viacep.NewHandler(viacep.NewClient(os.Getenv("VIACEP_URL")), logger)

	// Router
	r := mux.NewRouter()
	r.Use(observabilidade.MiddlewareLogger(logger))
	r.Use(metrics.Middleware)

	// Rotas públicas
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/registrar", usuarioHandler.Registrar).Methods("POST")
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(banco)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(banco)).Methods("POST")
	r.HandleFunc("/auth/redefinir-senha", usuarioHandler.RedefinirSenha).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/auth/reautenticar", usuarioHandler.Reautenticar).Methods("POST")
	api.HandleFunc("/auth/senha", usuarioHandler.AlterarSenha).Methods("PUT")
	api.HandleFunc("/usuarios/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/usuarios/me", usuarioHandler.AtualizarMe).Methods("PUT")

	// Processos
	api.HandleFunc("/processos", processoHandler.Criar).Methods("POST")
	api.HandleFunc("/processos", processoHandler.Listar).Methods("GET")
	api.HandleFunc("/processos/{id}", processoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/processos/{id}", processoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/processos/{id}", processoHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/processos/{id}/andamentos", processoHandler.RegistrarAndamento).Methods("POST")
	api.HandleFunc("/processos/{id}/historico", processoHandler.ListarHistorico).Methods("GET")

	// Empresas
	api.HandleFunc("/empresas", empresaHandler.Criar).Methods("POST")
	api.HandleFunc("/empresas", empresaHandler.Listar).Methods("GET")
	api.HandleFunc("/empresas/{id}", empresaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/empresas/{id}", empresaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/empresas/{id}", empresaHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/empresas/{id}/contatos", contatoHandler.ListarPorEmpresa).Methods("GET")
	api.HandleFunc("/empresas/{id}/informacoes", informacaoHandler.ListarPorEmpresa).Methods("GET")

	// Contatos
	api.HandleFunc("/contatos", contatoHandler.Criar).Methods("POST")
	api.HandleFunc("/contatos/{id}", contatoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contatos/{id}", contatoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/contatos/{id}", contatoHandler.Excluir).Methods("DELETE")

	// Informações
	api.HandleFunc("/informacoes", informacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/informacoes", informacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/informacoes/{id}", informacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/informacoes/{id}", informacaoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/informacoes/{id}", informacaoHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/informacoes/{id}/anexos", informacaoHandler.EnviarAnexo).Methods("POST")
	api.HandleFunc("/informacoes/{id}/anexos/{chave:.+}", informacaoHandler.RemoverAnexo).Methods("DELETE")

	// Dashboard, exportações e CEP
	api.HandleFunc("/estatisticas", estatisticasHandler.Resumo).Methods("GET")
	api.HandleFunc("/exportacao/processos", exportacaoHandler.ExportarProcessos).Methods("GET")
	api.HandleFunc("/cep/{cep}", viacepHandler.Buscar).Methods("GET")

	// Rotas de admin
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	admin.HandleFunc("/auditoria", auditoriaHandler.Listar).Methods("GET")
	admin.HandleFunc("/auditoria/exportar", auditoriaHandler.ExportarCSV).Methods("GET")

	// CORS: quem chama é a SPA no navegador
	origem := os.Getenv("CORS_ORIGIN")
	if origem == "" {
		origem = "*"
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{origem},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	logger.Info("servidor iniciado", zap.String("porta", porta))
	if err := http.ListenAndServe(":"+porta, corsHandler); err != nil {
		logger.Fatal("servidor encerrou", zap.Error(err))
	}
}
