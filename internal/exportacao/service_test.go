package exportacao

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nucleogestao/api-processos/internal/historico"
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
	if err := banco.AutoMigrate(&processo.Processo{}, &historico.Historico{}); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	return banco
}

func TestGerarXLSX(t *testing.T) {
	banco := abrirBanco(t)

	p := processo.Processo{
		Titulo:         "Reforma do auditório",
		DataOcorrencia: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Local:          "Protocolo",
		Status:         processo.StatusEmAndamento,
		Prioridade:     processo.PrioridadeMedia,
	}
	if err := banco.Create(&p).Error; err != nil {
		t.Fatalf("erro ao semear processo: %v", err)
	}

	entradas := []historico.Historico{
		{
			ProcessoID: p.ID,
			Acao:       historico.AcaoCriacao,
			ValoresNovos: map[string]interface{}{
				"data_ocorrencia": "2024-02-10", "local": "Protocolo",
			},
		},
		// Andamentos fora de ordem cronológica de propósito
		{
			ProcessoID: p.ID,
			Acao:       historico.AcaoAndamento,
			ValoresNovos: map[string]interface{}{
				"data": "2024-03-20", "local": "Setor B",
			},
			Observacao: "Parecer emitido",
		},
		{
			ProcessoID: p.ID,
			Acao:       historico.AcaoAndamento,
			ValoresNovos: map[string]interface{}{
				"data": "2024-02-25", "local": "Setor A",
			},
			Observacao: "Encaminhado para análise",
		},
		{
			ProcessoID: p.ID,
			Acao:       historico.AcaoAndamento,
			ValoresNovos: map[string]interface{}{
				"data": "2024-04-02", "local": "Arquivo",
			},
		},
	}
	for i := range entradas {
		if err := banco.Create(&entradas[i]).Error; err != nil {
			t.Fatalf("erro ao semear trilha: %v", err)
		}
	}

	arquivo, err := NewService(banco).GerarXLSX()
	if err != nil {
		t.Fatalf("erro ao gerar planilha: %v", err)
	}
	defer arquivo.Close()

	aba := "Reforma do auditório"
	linhas, err := arquivo.GetRows(aba)
	if err != nil {
		t.Fatalf("aba %q ausente: %v", aba, err)
	}

	// Cabeçalho + 1 linha inicial + 3 andamentos
	if len(linhas) != 5 {
		t.Fatalf("esperava 5 linhas, veio %d: %v", len(linhas), linhas)
	}
	if linhas[0][0] != "Data" || linhas[0][2] != "Status/Observações" {
		t.Errorf("cabeçalho errado: %v", linhas[0])
	}

	// Ordem cronológica ascendente
	esperadas := [][3]string{
		{"10/02/2024", "Protocolo", "Processo criado"},
		{"25/02/2024", "Setor A", "Encaminhado para análise"},
		{"20/03/2024", "Setor B", "Parecer emitido"},
		{"02/04/2024", "Arquivo", "Andamento registrado"},
	}
	for i, esperada := range esperadas {
		linha := linhas[i+1]
		for coluna := 0; coluna < 3; coluna++ {
			if linha[coluna] != esperada[coluna] {
				t.Errorf("linha %d coluna %d: esperava %q, veio %q",
					i+1, coluna, esperada[coluna], linha[coluna])
			}
		}
	}
}

func TestNomeDeAba(t *testing.T) {
	usados := map[string]bool{}

	nome := nomeDeAba(processo.Processo{ID: 1, Titulo: "Obras: fase 2 [urgente]"}, usados)
	if nome != "Obras fase 2 urgente" {
		t.Errorf("caracteres reservados deveriam sair: %q", nome)
	}

	repetido := nomeDeAba(processo.Processo{ID: 2, Titulo: "Obras: fase 2 [urgente]"}, usados)
	if repetido == nome {
		t.Errorf("títulos repetidos precisam desambiguar: %q", repetido)
	}

	semTitulo := nomeDeAba(processo.Processo{ID: 3, Titulo: "   "}, usados)
	if semTitulo != "Processo 3" {
		t.Errorf("título vazio deveria usar o ID: %q", semTitulo)
	}

	longo := nomeDeAba(processo.Processo{ID: 4, Titulo: "Processo administrativo de regularização fundiária"}, usados)
	if len([]rune(longo)) > 31 {
		t.Errorf("nome de aba acima do limite do Excel: %q", longo)
	}
}
