package usuario

import "time"

// Usuario é quem opera o back-office. Todo cadastro entra como admin
// (regra de negócio do sistema, não um limite de segurança).
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Nome     string `gorm:"size:255;not null" json:"nome"`
	Perfil   string `gorm:"size:20;not null" json:"perfil"` // "admin" ou "user"
	Telefone string `gorm:"size:20" json:"telefone,omitempty"`
	Endereco string `gorm:"size:255" json:"endereco,omitempty"`

	Senha                 string `gorm:"size:255;not null" json:"-"`
	PrecisaRedefinirSenha bool   `json:"precisaRedefinirSenha"`
}

// IsAdmin informa se o usuário tem perfil de administrador.
func (u *Usuario) IsAdmin() bool {
	return u.Perfil == "admin"
}
