package validador

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MensagemDeErro converte um erro do go-playground/validator em uma mensagem
// por campo para devolver ao formulário. Erros que não são de validação voltam
// com a mensagem original.
func MensagemDeErro(err error) string {
	errosValidacao, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	mensagens := make([]string, 0, len(errosValidacao))
	for _, e := range errosValidacao {
		campo := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			mensagens = append(mensagens, "Campo obrigatório: "+campo)
		case "email":
			mensagens = append(mensagens, "E-mail inválido")
		case "cnpj":
			mensagens = append(mensagens, "CNPJ inválido")
		case "cep":
			mensagens = append(mensagens, "CEP inválido")
		case "oneof":
			mensagens = append(mensagens, "Valor inválido para "+campo)
		case "min":
			mensagens = append(mensagens, "Campo "+campo+" muito curto")
		case "len":
			mensagens = append(mensagens, "Tamanho inválido para "+campo)
		default:
			mensagens = append(mensagens, "Campo inválido: "+campo)
		}
	}
	return strings.Join(mensagens, "; ")
}
