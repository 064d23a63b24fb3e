package usuario

// DTOs de requisição. A validação de formato acontece aqui, antes de
// qualquer chamada ao banco.

type RegistrarRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Senha    string `json:"senha" validate:"required,min=6"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type ReautenticarRequest struct {
	Senha string `json:"senha" validate:"required"`
}

type RedefinirSenhaRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AlterarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha" validate:"required,min=6"`
}

type AtualizarPerfilRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}
