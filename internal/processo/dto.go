package processo

type CriarProcessoRequest struct {
	Titulo         string `json:"titulo" validate:"required"`
	Descricao      string `json:"descricao"`
	DataOcorrencia string `json:"dataOcorrencia" validate:"required"`
	Local          string `json:"local" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=pendente em_andamento concluido cancelado"`
	Prioridade     string `json:"prioridade" validate:"omitempty,oneof=baixa media alta"`
	Responsavel    string `json:"responsavel"`
}

type AtualizarProcessoRequest struct {
	Titulo         string `json:"titulo" validate:"required"`
	Descricao      string `json:"descricao"`
	DataOcorrencia string `json:"dataOcorrencia" validate:"required"`
	Local          string `json:"local" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=pendente em_andamento concluido cancelado"`
	Prioridade     string `json:"prioridade" validate:"required,oneof=baixa media alta"`
	Responsavel    string `json:"responsavel"`
}

// AndamentoRequest registra onde o processo está e o que aconteceu.
// MontouProcesso marca o protocolo formal; só então NumeroProcesso é aceito.
type AndamentoRequest struct {
	Data           string `json:"data" validate:"required"`
	Local          string `json:"local" validate:"required"`
	MontouProcesso bool   `json:"montouProcesso"`
	NumeroProcesso string `json:"numeroProcesso"`
	Observacao     string `json:"observacao"`
}
