package contato

import "time"

// Contato é uma pessoa vinculada a uma empresa do CRM.
type Contato struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	EmpresaID uint `gorm:"not null;index" json:"empresaId"`

	Nome         string `gorm:"size:255;not null" json:"nome"`
	Cargo        string `gorm:"size:100" json:"cargo,omitempty"`
	Departamento string `gorm:"size:100" json:"departamento,omitempty"`
	Telefone     string `gorm:"size:20" json:"telefone,omitempty"`
	Celular      string `gorm:"size:20" json:"celular,omitempty"`
	Email        string `gorm:"size:255;not null" json:"email"`

	// No máximo um contato por empresa carrega a flag; o repositório limpa
	// a dos demais na mesma transação que grava esta.
	Principal bool `json:"principal"`

	Observacoes string `json:"observacoes,omitempty"`

	CriadoPor     uint   `gorm:"index" json:"criadoPor"`
	AtualizadoPor string `gorm:"size:255" json:"atualizadoPor"`
}
