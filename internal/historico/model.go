package historico

import "time"

// Ações registradas na trilha de um processo.
const (
	AcaoCriacao       = "created"
	AcaoAtualizacao   = "updated"
	AcaoMudancaStatus = "status_changed"
	AcaoAndamento     = "progress_update"
)

// Historico é uma entrada imutável da trilha de mudanças de um processo.
// Nunca é atualizada nem removida individualmente; só sai do banco junto
// com o processo dono.
type Historico struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ProcessoID uint   `gorm:"not null;index" json:"processoId"`
	Acao       string `gorm:"size:30;not null" json:"acao"`

	// Fotografias dos campos antes e depois da mudança. Antigos fica nulo
	// na criação do processo.
	ValoresAntigos map[string]interface{} `gorm:"serializer:json" json:"valoresAntigos,omitempty"`
	ValoresNovos   map[string]interface{} `gorm:"serializer:json" json:"valoresNovos"`

	Usuario    string `gorm:"size:255" json:"usuario"`
	Observacao string `json:"observacao,omitempty"`
}
