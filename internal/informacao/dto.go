package informacao

type InformacaoRequest struct {
	EmpresaID      uint   `json:"empresaId" validate:"required"`
	ContatoID      *uint  `json:"contatoId"`
	Titulo         string `json:"titulo" validate:"required"`
	Descricao      string `json:"descricao" validate:"required"`
	Relevancia     string `json:"relevancia" validate:"required,oneof=baixa media alta critica"`
	Categoria      string `json:"categoria"`
	DataOcorrencia string `json:"dataOcorrencia" validate:"required"`
}
