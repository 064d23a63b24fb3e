package auditoria

import "time"

// RegistroAuditoria é a prova imutável de que uma empresa foi excluída:
// guarda a identidade da empresa, quantos dependentes caíram junto, quem
// pediu e uma cópia desnormalizada dos dados cadastrais. Criado exatamente
// uma vez por exclusão, nunca alterado.
type RegistroAuditoria struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EmpresaID   uint   `gorm:"not null;index" json:"empresaId"`
	EmpresaNome string `gorm:"size:255;not null" json:"empresaNome"`
	EmpresaCNPJ string `gorm:"size:14;not null" json:"empresaCnpj"`

	ContatosExcluidos int `json:"contatosExcluidos"`
	LogsExcluidos     int `json:"logsExcluidos"`

	UsuarioID    uint      `gorm:"not null" json:"usuarioId"`
	UsuarioEmail string    `gorm:"size:255;not null" json:"usuarioEmail"`
	ExcluidoEm   time.Time `gorm:"not null" json:"excluidoEm"`

	// Cópia dos dados cadastrais no momento da exclusão
	RazaoSocial string `gorm:"size:255" json:"razaoSocial"`
	Endereco    string `gorm:"size:500" json:"endereco"`
	Telefone    string `gorm:"size:20" json:"telefone"`
	Email       string `gorm:"size:255" json:"email"`
	Site        string `gorm:"size:255" json:"site"`
	Observacoes string `json:"observacoes"`
}
