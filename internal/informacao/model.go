package informacao

import "time"

// Relevâncias aceitas para um log de informação.
const (
	RelevanciaBaixa   = "baixa"
	RelevanciaMedia   = "media"
	RelevanciaAlta    = "alta"
	RelevanciaCritica = "critica"
)

// Informacao é um log de informação do CRM: algo que aconteceu envolvendo
// uma empresa e, opcionalmente, um contato dela. RegistradoEm (CreatedAt) é
// atribuído pelo sistema e não se confunde com a data da ocorrência.
type Informacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"registradoEm"`
	UpdatedAt time.Time `json:"updatedAt"`

	EmpresaID uint  `gorm:"not null;index" json:"empresaId"`
	ContatoID *uint `gorm:"index" json:"contatoId,omitempty"`

	Titulo         string    `gorm:"size:255;not null" json:"titulo"`
	Descricao      string    `gorm:"not null" json:"descricao"`
	Relevancia     string    `gorm:"size:20;not null" json:"relevancia"`
	Categoria      string    `gorm:"size:100" json:"categoria"`
	DataOcorrencia time.Time `json:"dataOcorrencia"`

	// Chaves dos anexos no bucket, em JSON
	Anexos []string `gorm:"type:jsonb;serializer:json" json:"anexos"`

	CriadoPor     uint   `gorm:"index" json:"criadoPor"`
	AtualizadoPor string `gorm:"size:255" json:"atualizadoPor"`
}
