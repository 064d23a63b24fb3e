package contato

type ContatoRequest struct {
	EmpresaID    uint   `json:"empresaId" validate:"required"`
	Nome         string `json:"nome" validate:"required"`
	Cargo        string `json:"cargo"`
	Departamento string `json:"departamento"`
	Telefone     string `json:"telefone"`
	Celular      string `json:"celular"`
	Email        string `json:"email" validate:"required,email"`
	Principal    bool   `json:"principal"`
	Observacoes  string `json:"observacoes"`
}
