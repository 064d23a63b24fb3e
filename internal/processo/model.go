package processo

import "time"

// Status e prioridades aceitos.
const (
	StatusPendente    = "pendente"
	StatusEmAndamento = "em_andamento"
	StatusConcluido   = "concluido"
	StatusCancelado   = "cancelado"

	PrioridadeBaixa = "baixa"
	PrioridadeMedia = "media"
	PrioridadeAlta  = "alta"
)

// Processo é a matéria administrativa acompanhada pelo back-office.
type Processo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Titulo         string    `gorm:"size:255;not null" json:"titulo"`
	Descricao      string    `json:"descricao,omitempty"`
	DataOcorrencia time.Time `json:"dataOcorrencia"`
	Local          string    `gorm:"size:255;not null" json:"local"` // setor atual
	Status         string    `gorm:"size:30;not null" json:"status"`
	Prioridade     string    `gorm:"size:20;not null" json:"prioridade"`
	Responsavel    string    `gorm:"size:255" json:"responsavel,omitempty"`

	// Preenchidos apenas quando um andamento registra que o processo
	// formal foi montado.
	MontouProcesso bool   `json:"montouProcesso"`
	NumeroProcesso string `gorm:"size:100" json:"numeroProcesso,omitempty"`

	CriadoPor     uint   `gorm:"index" json:"criadoPor"`
	AtualizadoPor string `gorm:"size:255" json:"atualizadoPor"`
}

// Fotografia devolve o snapshot dos campos de negócio, no formato gravado
// na trilha de mudanças.
func (p *Processo) Fotografia() map[string]interface{} {
	return map[string]interface{}{
		"titulo":          p.Titulo,
		"descricao":       p.Descricao,
		"data_ocorrencia": p.DataOcorrencia.Format(time.RFC3339),
		"local":           p.Local,
		"status":          p.Status,
		"prioridade":      p.Prioridade,
		"responsavel":     p.Responsavel,
		"montou_processo": p.MontouProcesso,
		"numero_processo": p.NumeroProcesso,
	}
}
