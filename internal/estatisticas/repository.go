package estatisticas

import (
	"time"

	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/contato"
	"github.com/nucleogestao/api-processos/internal/empresa"
	"github.com/nucleogestao/api-processos/internal/informacao"
	"github.com/nucleogestao/api-processos/internal/processo"
)

// Resumo alimenta os cards do dashboard.
type Resumo struct {
	TotalProcessos         int64            `json:"totalProcessos"`
	ProcessosPorStatus     map[string]int64 `json:"processosPorStatus"`
	ProcessosPorPrioridade map[string]int64 `json:"processosPorPrioridade"`

	TotalEmpresas int64 `json:"totalEmpresas"`
	EmpresasNoMes int64 `json:"empresasNoMes"`
	TotalContatos int64 `json:"totalContatos"`

	TotalInformacoes         int64            `json:"totalInformacoes"`
	InformacoesPorRelevancia map[string]int64 `json:"informacoesPorRelevancia"`
}

// Repository reduz as coleções em contagens e agrupamentos.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

type linhaAgrupada struct {
	Chave string
	Total int64
}

func (r *Repository) agrupar(model interface{}, coluna string) (map[string]int64, error) {
	var linhas []linhaAgrupada
	err := r.DB.Model(model).
		Select(coluna + " AS chave, COUNT(*) AS total").
		Group(coluna).
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	resultado := make(map[string]int64, len(linhas))
	for _, linha := range linhas {
		resultado[linha.Chave] = linha.Total
	}
	return resultado, nil
}

// Calcular monta o resumo completo do dashboard.
func (r *Repository) Calcular() (*Resumo, error) {
	resumo := &Resumo{}

	if err := r.DB.Model(&processo.Processo{}).Count(&resumo.TotalProcessos).Error; err != nil {
		return nil, err
	}
	porStatus, err := r.agrupar(&processo.Processo{}, "status")
	if err != nil {
		return nil, err
	}
	resumo.ProcessosPorStatus = porStatus

	porPrioridade, err := r.agrupar(&processo.Processo{}, "prioridade")
	if err != nil {
		return nil, err
	}
	resumo.ProcessosPorPrioridade = porPrioridade

	if err := r.DB.Model(&empresa.Empresa{}).Count(&resumo.TotalEmpresas).Error; err != nil {
		return nil, err
	}

	agora := time.Now()
	inicioDoMes := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	if err := r.DB.Model(&empresa.Empresa{}).
		Where("created_at >= ?", inicioDoMes).
		Count(&resumo.EmpresasNoMes).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&contato.Contato{}).Count(&resumo.TotalContatos).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&informacao.Informacao{}).Count(&resumo.TotalInformacoes).Error; err != nil {
		return nil, err
	}
	porRelevancia, err := r.agrupar(&informacao.Informacao{}, "relevancia")
	if err != nil {
		return nil, err
	}
	resumo.InformacoesPorRelevancia = porRelevancia

	return resumo, nil
}
