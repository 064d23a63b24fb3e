package exportacao

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/historico"
	"github.com/nucleogestao/api-processos/internal/processo"
)

// Service monta a planilha de processos: uma aba por processo, com a linha
// inicial e uma linha por andamento em ordem cronológica.
type Service struct {
	DB        *gorm.DB
	Processos processo.Repository
	Historico *historico.Repository
}

func NewService(db *gorm.DB) *Service {
	trilha := historico.NewRepository(db)
	return &Service{
		DB:        db,
		Processos: processo.NewRepository(trilha),
		Historico: trilha,
	}
}

type linhaPlanilha struct {
	data   time.Time
	local  string
	status string
}

// GerarXLSX produz o arquivo com uma aba por processo.
func (s *Service) GerarXLSX() (*excelize.File, error) {
	processos, err := s.Processos.ListarTodos(s.DB)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	estiloCabecalho, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"305496"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	nomesUsados := map[string]bool{}
	for _, p := range processos {
		entradas, err := s.Historico.ListarPorProcessoAsc(p.ID)
		if err != nil {
			return nil, err
		}
		linhas := montarLinhas(p, entradas)

		aba := nomeDeAba(p, nomesUsados)
		if _, err := f.NewSheet(aba); err != nil {
			return nil, err
		}

		_ = f.SetCellValue(aba, "A1", "Data")
		_ = f.SetCellValue(aba, "B1", "Local/Setor")
		_ = f.SetCellValue(aba, "C1", "Status/Observações")
		_ = f.SetCellStyle(aba, "A1", "C1", estiloCabecalho)
		_ = f.SetColWidth(aba, "A", "A", 14)
		_ = f.SetColWidth(aba, "B", "B", 30)
		_ = f.SetColWidth(aba, "C", "C", 50)

		for i, linha := range linhas {
			rank := i + 2
			_ = f.SetCellValue(aba, fmt.Sprintf("A%d", rank), linha.data.Format("02/01/2006"))
			_ = f.SetCellValue(aba, fmt.Sprintf("B%d", rank), linha.local)
			_ = f.SetCellValue(aba, fmt.Sprintf("C%d", rank), linha.status)
		}
	}

	// A aba default só sai quando alguma outra existe
	if len(processos) > 0 {
		_ = f.DeleteSheet("Sheet1")
	}
	return f, nil
}

// montarLinhas converte a trilha em linhas da aba: a fotografia inicial da
// entrada created mais uma linha por progress_update, ordenadas por data.
func montarLinhas(p processo.Processo, entradas []historico.Historico) []linhaPlanilha {
	var linhas []linhaPlanilha
	temCriacao := false

	for _, entrada := range entradas {
		switch entrada.Acao {
		case historico.AcaoCriacao:
			temCriacao = true
			linhas = append(linhas, linhaPlanilha{
				data:   dataDoSnapshot(entrada.ValoresNovos, "data_ocorrencia", p.CreatedAt),
				local:  textoDoSnapshot(entrada.ValoresNovos, "local", p.Local),
				status: "Processo criado",
			})
		case historico.AcaoAndamento:
			status := entrada.Observacao
			if status == "" {
				status = "Andamento registrado"
			}
			linhas = append(linhas, linhaPlanilha{
				data:   dataDoSnapshot(entrada.ValoresNovos, "data", entrada.CreatedAt),
				local:  textoDoSnapshot(entrada.ValoresNovos, "local", ""),
				status: status,
			})
		}
	}

	// Processos anteriores à trilha não têm entrada created
	if !temCriacao {
		linhas = append(linhas, linhaPlanilha{
			data:   p.DataOcorrencia,
			local:  p.Local,
			status: "Processo criado",
		})
	}

	sort.SliceStable(linhas, func(i, j int) bool {
		return linhas[i].data.Before(linhas[j].data)
	})
	return linhas
}

func dataDoSnapshot(snapshot map[string]interface{}, campo string, padrao time.Time) time.Time {
	s, ok := snapshot[campo].(string)
	if !ok {
		return padrao
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return padrao
}

func textoDoSnapshot(snapshot map[string]interface{}, campo, padrao string) string {
	if s, ok := snapshot[campo].(string); ok && s != "" {
		return s
	}
	return padrao
}

// nomeDeAba limpa o título para os limites do Excel (31 caracteres, sem
// caracteres reservados) e desambigua duplicatas com o ID.
func nomeDeAba(p processo.Processo, usados map[string]bool) string {
	nome := strings.TrimSpace(p.Titulo)
	for _, reservado := range []string{"\\", "/", "?", "*", "[", "]", ":"} {
		nome = strings.ReplaceAll(nome, reservado, " ")
	}
	nome = strings.Join(strings.Fields(nome), " ")
	if nome == "" {
		nome = fmt.Sprintf("Processo %d", p.ID)
	}
	if runes := []rune(nome); len(runes) > 31 {
		nome = strings.TrimSpace(string(runes[:31]))
	}
	if usados[nome] {
		sufixo := fmt.Sprintf(" (%d)", p.ID)
		if runes := []rune(nome); len(runes)+len(sufixo) > 31 {
			nome = strings.TrimSpace(string(runes[:31-len(sufixo)]))
		}
		nome += sufixo
	}
	usados[nome] = true
	return nome
}
