package observabilidade

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics reúne as métricas Prometheus da API.
type Metrics struct {
	// Registry próprio para evitar pânico de coletor duplicado quando
	// NewMetrics é chamado mais de uma vez (ex.: em testes).
	Registry *prometheus.Registry

	requisicoesTotal  *prometheus.CounterVec
	duracaoRequisicao *prometheus.HistogramVec
}

// NewMetrics cria um registry dedicado e registra as métricas da aplicação.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requisicoesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_requisicoes_total",
				Help: "Total de requisições HTTP por rota e status.",
			},
			[]string{"rota", "metodo", "status"},
		),
		duracaoRequisicao: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_duracao_requisicao_segundos",
				Help:    "Duração das requisições HTTP por rota.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"rota"},
		),
	}
}

// Middleware instrumenta cada requisição com contador e histograma.
// Usa o template da rota do mux como label para não explodir a cardinalidade.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		rota := r.URL.Path
		if atual := mux.CurrentRoute(r); atual != nil {
			if tpl, err := atual.GetPathTemplate(); err == nil {
				rota = tpl
			}
		}
		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}

		m.requisicoesTotal.WithLabelValues(rota, r.Method, strconv.Itoa(status)).Inc()
		m.duracaoRequisicao.WithLabelValues(rota).Observe(time.Since(inicio).Seconds())
	})
}

// Handler expõe o registry no formato do Prometheus para GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
