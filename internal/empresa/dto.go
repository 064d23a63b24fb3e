package empresa

type EmpresaRequest struct {
	CNPJ         string `json:"cnpj" validate:"required,cnpj"`
	RazaoSocial  string `json:"razaoSocial" validate:"required"`
	NomeFantasia string `json:"nomeFantasia" validate:"required"`
	Logradouro   string `json:"logradouro" validate:"required"`
	Numero       string `json:"numero" validate:"required"`
	Complemento  string `json:"complemento"`
	Bairro       string `json:"bairro" validate:"required"`
	Cidade       string `json:"cidade" validate:"required"`
	UF           string `json:"uf" validate:"required,len=2"`
	CEP          string `json:"cep" validate:"required,cep"`
	Telefone     string `json:"telefone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Site         string `json:"site"`
	Observacoes  string `json:"observacoes"`
}

// ExcluirEmpresaRequest carrega a senha para a reautenticação obrigatória
// antes da exclusão.
type ExcluirEmpresaRequest struct {
	Senha string `json:"senha" validate:"required"`
}
