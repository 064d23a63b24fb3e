package validador

import "strings"

// Pesos oficiais da RFB para o cálculo dos dígitos verificadores do CNPJ.
var (
	pesosPrimeiroDigito = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	pesosSegundoDigito  = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ApenasDigitos remove tudo que não for dígito decimal.
func ApenasDigitos(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCNPJ aceita o CNPJ com ou sem máscara e confere os dois dígitos
// verificadores pelo módulo 11.
func ValidarCNPJ(cnpj string) bool {
	digitos := ApenasDigitos(cnpj)
	if len(digitos) != 14 {
		return false
	}

	// Sequências de um único dígito repetido passam na conta, mas são inválidas
	if digitosIguais(digitos) {
		return false
	}

	d1 := calcularDigito(digitos[:12], pesosPrimeiroDigito)
	d2 := calcularDigito(digitos[:13], pesosSegundoDigito)

	return d1 == int(digitos[12]-'0') && d2 == int(digitos[13]-'0')
}

// NormalizarCNPJ devolve o CNPJ apenas com dígitos, pronto para armazenamento.
func NormalizarCNPJ(cnpj string) string {
	return ApenasDigitos(cnpj)
}

// FormatarCNPJ aplica a máscara 00.000.000/0000-00 quando o valor tem 14 dígitos.
func FormatarCNPJ(cnpj string) string {
	d := ApenasDigitos(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// FormatarTelefone formata celulares (11 dígitos) como (DD) DDDDD-DDDD e fixos
// (10 dígitos) como (DD) DDDD-DDDD. Valores curtos voltam como chegaram.
func FormatarTelefone(telefone string) string {
	d := ApenasDigitos(telefone)
	switch {
	case len(d) >= 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:11]
	case len(d) >= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return telefone
	}
}

// ValidarCEP exige exatamente 8 dígitos, com ou sem máscara.
func ValidarCEP(cep string) bool {
	return len(ApenasDigitos(cep)) == 8
}

// FormatarCEP aplica a máscara DDDDD-DDD.
func FormatarCEP(cep string) string {
	d := ApenasDigitos(cep)
	if len(d) != 8 {
		return cep
	}
	return d[:5] + "-" + d[5:]
}

func digitosIguais(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func calcularDigito(base string, pesos []int) int {
	soma := 0
	for i, peso := range pesos {
		soma += int(base[i]-'0') * peso
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}
