package historico

import (
	"fmt"
	"sort"
	"time"
)

// Rótulo "vazio" usado quando o campo não tinha valor anterior.
const ValorVazio = "vazio"

// rotulos traduz o nome do campo da fotografia para o rótulo exibido.
// Campos fora da tabela aparecem com o nome cru.
var rotulos = map[string]string{
	"titulo":          "Título",
	"descricao":       "Descrição",
	"data":            "Data",
	"data_ocorrencia": "Data da ocorrência",
	"local":           "Local/Setor",
	"status":          "Status",
	"prioridade":      "Prioridade",
	"responsavel":     "Responsável",
	"numero_processo": "Número do processo",
	"montou_processo": "Montou processo",
}

// camposDeData recebem formatação de data; valor ilegível vira "data inválida"
// em vez de erro.
var camposDeData = map[string]bool{
	"data":            true,
	"data_ocorrencia": true,
}

// Mudanca é uma linha da trilha: o campo, de onde veio e para onde foi.
type Mudanca struct {
	Campo  string `json:"campo"`
	Rotulo string `json:"rotulo"`
	De     string `json:"de"`
	Para   string `json:"para"`
}

// Linha é um par rótulo/valor do resumo de andamento.
type Linha struct {
	Rotulo string `json:"rotulo"`
	Valor  string `json:"valor"`
}

// CalcularMudancas compara as duas fotografias e devolve uma linha por campo
// do snapshot novo cujo valor difere do antigo. Campo ausente no antigo conta
// como mudança a partir de "vazio". A ordem de saída é alfabética por campo,
// para render estável.
func CalcularMudancas(antigos, novos map[string]interface{}) []Mudanca {
	campos := make([]string, 0, len(novos))
	for campo := range novos {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	var mudancas []Mudanca
	for _, campo := range campos {
		valorNovo := novos[campo]
		valorAntigo, existia := antigos[campo]
		if existia && valorBruto(valorAntigo) == valorBruto(valorNovo) {
			continue
		}
		if !existia && valorBruto(valorNovo) == "" {
			continue
		}

		de := ValorVazio
		if existia {
			de = FormatarValor(campo, valorAntigo)
		}
		mudancas = append(mudancas, Mudanca{
			Campo:  campo,
			Rotulo: RotuloDoCampo(campo),
			De:     de,
			Para:   FormatarValor(campo, valorNovo),
		})
	}
	return mudancas
}

// ResumoAndamento monta o resumo de um progress_update: em vez do diff
// genérico, mostra os subcampos reconhecidos da fotografia nova.
func ResumoAndamento(valoresNovos map[string]interface{}, observacao string) []Linha {
	var linhas []Linha

	if v, ok := valoresNovos["data"]; ok {
		linhas = append(linhas, Linha{Rotulo: "Data", Valor: FormatarValor("data", v)})
	}
	if v, ok := valoresNovos["local"]; ok {
		linhas = append(linhas, Linha{Rotulo: "Local/Setor", Valor: FormatarValor("local", v)})
	}
	if v, ok := valoresNovos["montou_processo"]; ok {
		linhas = append(linhas, Linha{Rotulo: "Montou processo", Valor: FormatarValor("montou_processo", v)})
	}
	if v, ok := valoresNovos["numero_processo"]; ok && valorBruto(v) != "" {
		linhas = append(linhas, Linha{Rotulo: "Número do processo", Valor: fmt.Sprint(v)})
	}
	if observacao != "" {
		linhas = append(linhas, Linha{Rotulo: "Observação", Valor: observacao})
	}
	return linhas
}

// RotuloDoCampo devolve o rótulo humano do campo, ou o nome cru se não houver.
func RotuloDoCampo(campo string) string {
	if rotulo, ok := rotulos[campo]; ok {
		return rotulo
	}
	return campo
}

// FormatarValor formata o valor de um campo para exibição: datas viram
// dd/mm/aaaa (com hora quando houver), booleanos viram Sim/Não, vazio vira o
// sentinela "vazio". Data ilegível degrada para "data inválida".
func FormatarValor(campo string, v interface{}) string {
	if v == nil {
		return ValorVazio
	}

	switch valor := v.(type) {
	case bool:
		if valor {
			return "Sim"
		}
		return "Não"
	case time.Time:
		return formatarInstante(valor)
	case string:
		if valor == "" {
			return ValorVazio
		}
		if camposDeData[campo] {
			return formatarData(valor)
		}
		return valor
	default:
		s := fmt.Sprint(valor)
		if s == "" {
			return ValorVazio
		}
		return s
	}
}

func formatarData(s string) string {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatarInstante(t)
		}
	}
	return "data inválida"
}

func formatarInstante(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("02/01/2006")
	}
	return t.Format("02/01/2006 15:04")
}

func valorBruto(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
