package estatisticas

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nucleogestao/api-processos/internal/contato"
	"github.com/nucleogestao/api-processos/internal/empresa"
	"github.com/nucleogestao/api-processos/internal/informacao"
	"github.com/nucleogestao/api-processos/internal/processo"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	banco, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}
	if err := banco.AutoMigrate(
		&processo.Processo{},
		&empresa.Empresa{},
		&contato.Contato{},
		&informacao.Informacao{},
	); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	return banco
}

func TestCalcular(t *testing.T) {
	banco := abrirBanco(t)

	for _, status := range []string{
		processo.StatusPendente, processo.StatusPendente, processo.StatusConcluido,
	} {
		p := processo.Processo{
			Titulo: "P", Local: "Protocolo", Status: status,
			Prioridade:     processo.PrioridadeAlta,
			DataOcorrencia: time.Now(),
		}
		if err := banco.Create(&p).Error; err != nil {
			t.Fatalf("erro ao semear processo: %v", err)
		}
	}

	e := empresa.Empresa{CNPJ: "11222333000181", RazaoSocial: "R", NomeFantasia: "F"}
	if err := banco.Create(&e).Error; err != nil {
		t.Fatalf("erro ao semear empresa: %v", err)
	}
	c := contato.Contato{EmpresaID: e.ID, Nome: "Ana", Email: "a@exemplo.com.br"}
	if err := banco.Create(&c).Error; err != nil {
		t.Fatalf("erro ao semear contato: %v", err)
	}
	for _, relevancia := range []string{informacao.RelevanciaAlta, informacao.RelevanciaCritica} {
		info := informacao.Informacao{
			EmpresaID: e.ID, Titulo: "I", Descricao: "d", Relevancia: relevancia,
		}
		if err := banco.Create(&info).Error; err != nil {
			t.Fatalf("erro ao semear informação: %v", err)
		}
	}

	resumo, err := NewRepository(banco).Calcular()
	if err != nil {
		t.Fatalf("erro ao calcular: %v", err)
	}

	if resumo.TotalProcessos != 3 {
		t.Errorf("total de processos: esperava 3, veio %d", resumo.TotalProcessos)
	}
	if resumo.ProcessosPorStatus[processo.StatusPendente] != 2 ||
		resumo.ProcessosPorStatus[processo.StatusConcluido] != 1 {
		t.Errorf("agrupamento por status errado: %v", resumo.ProcessosPorStatus)
	}
	if resumo.ProcessosPorPrioridade[processo.PrioridadeAlta] != 3 {
		t.Errorf("agrupamento por prioridade errado: %v", resumo.ProcessosPorPrioridade)
	}
	if resumo.TotalEmpresas != 1 || resumo.EmpresasNoMes != 1 {
		t.Errorf("empresas: total=%d noMes=%d", resumo.TotalEmpresas, resumo.EmpresasNoMes)
	}
	if resumo.TotalContatos != 1 || resumo.TotalInformacoes != 2 {
		t.Errorf("contatos=%d informações=%d", resumo.TotalContatos, resumo.TotalInformacoes)
	}
	if resumo.InformacoesPorRelevancia[informacao.RelevanciaCritica] != 1 {
		t.Errorf("agrupamento por relevância errado: %v", resumo.InformacoesPorRelevancia)
	}
}
