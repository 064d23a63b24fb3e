package empresa

import "time"

// Empresa é a organização do CRM, identificada pelo CNPJ.
// O CNPJ é armazenado só com dígitos; a máscara é coisa de exibição.
type Empresa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CNPJ         string `gorm:"size:14;not null;uniqueIndex" json:"cnpj"`
	RazaoSocial  string `gorm:"size:255;not null" json:"razaoSocial"`
	NomeFantasia string `gorm:"size:255;not null" json:"nomeFantasia"`

	// Endereço estruturado
	Logradouro  string `gorm:"size:255" json:"logradouro"`
	Numero      string `gorm:"size:20" json:"numero"`
	Complemento string `gorm:"size:100" json:"complemento,omitempty"`
	Bairro      string `gorm:"size:100" json:"bairro"`
	Cidade      string `gorm:"size:100" json:"cidade"`
	UF          string `gorm:"size:2" json:"uf"`
	CEP         string `gorm:"size:9" json:"cep"`

	Telefone    string `gorm:"size:20" json:"telefone,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	Site        string `gorm:"size:255" json:"site,omitempty"`
	Observacoes string `json:"observacoes,omitempty"`

	CriadoPor     uint   `gorm:"index" json:"criadoPor"`
	AtualizadoPor string `gorm:"size:255" json:"atualizadoPor"`
}

// EnderecoCompleto monta a linha de endereço gravada na auditoria.
func (e *Empresa) EnderecoCompleto() string {
	endereco := e.Logradouro + ", " + e.Numero
	if e.Complemento != "" {
		endereco += " - " + e.Complemento
	}
	return endereco + " - " + e.Bairro + ", " + e.Cidade + "/" + e.UF + " - CEP " + e.CEP
}
