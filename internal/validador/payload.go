package validador

import "github.com/go-playground/validator/v10"

// RegistrarTags adiciona as validações de domínio ("cnpj", "cep") a uma
// instância do go-playground/validator usada pelos handlers.
func RegistrarTags(v *validator.Validate) error {
	if err := v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		valor, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return ValidarCNPJ(valor)
	}); err != nil {
		return err
	}

	return v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		valor, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return ValidarCEP(valor)
	})
}
