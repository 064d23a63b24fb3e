package validador_test

import (
	"testing"

	"github.com/nucleogestao/api-processos/internal/validador"
)

func TestValidarCNPJ(t *testing.T) {
	casos := []struct {
		nome   string
		cnpj   string
		valido bool
	}{
		{"valido sem mascara", "11222333000181", true},
		{"valido com mascara", "11.222.333/0001-81", true},
		{"ultimo digito incrementado", "11222333000182", false},
		{"primeiro verificador errado", "11222333000191", false},
		{"curto", "1122233300018", false},
		{"longo", "112223330001811", false},
		{"digitos repetidos", "00000000000000", false},
		{"digitos repetidos com mascara", "11.111.111/1111-11", false},
		{"letras", "11a22b333c0001d81", false},
		{"vazio", "", false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			if got := validador.ValidarCNPJ(c.cnpj); got != c.valido {
				t.Errorf("ValidarCNPJ(%q) = %v, esperado %v", c.cnpj, got, c.valido)
			}
		})
	}
}

func TestFormatarTelefone(t *testing.T) {
	casos := []struct {
		entrada string
		saida   string
	}{
		{"11987654321", "(11) 98765-4321"},
		{"1133334444", "(11) 3333-4444"},
		{"(11)98765-4321", "(11) 98765-4321"},
		{"123", "123"},
	}

	for _, c := range casos {
		if got := validador.FormatarTelefone(c.entrada); got != c.saida {
			t.Errorf("FormatarTelefone(%q) = %q, esperado %q", c.entrada, got, c.saida)
		}
	}
}

func TestFormatarCEP(t *testing.T) {
	if got := validador.FormatarCEP("01310100"); got != "01310-100" {
		t.Errorf("FormatarCEP(01310100) = %q, esperado 01310-100", got)
	}
	if got := validador.FormatarCEP("013"); got != "013" {
		t.Errorf("CEP incompleto deveria voltar intacto, veio %q", got)
	}
}

func TestValidarCEP(t *testing.T) {
	if !validador.ValidarCEP("01310-100") {
		t.Error("CEP mascarado com 8 digitos deveria ser valido")
	}
	if validador.ValidarCEP("0131010") {
		t.Error("CEP com 7 digitos deveria ser invalido")
	}
}

func TestFormatarCNPJ(t *testing.T) {
	if got := validador.FormatarCNPJ("11222333000181"); got != "11.222.333/0001-81" {
		t.Errorf("FormatarCNPJ = %q, esperado 11.222.333/0001-81", got)
	}
}

func TestNormalizarCNPJ(t *testing.T) {
	if got := validador.NormalizarCNPJ("11.222.333/0001-81"); got != "11222333000181" {
		t.Errorf("NormalizarCNPJ = %q, esperado 11222333000181", got)
	}
}
