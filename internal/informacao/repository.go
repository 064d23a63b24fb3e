package informacao

import (
	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/contato"
)

// Repository encapsula o acesso aos logs de informação.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(i *Informacao) error {
	return r.DB.Create(i).Error
}

func (r *Repository) Salvar(i *Informacao) error {
	return r.DB.Save(i).Error
}

func (r *Repository) BuscarPorID(id uint) (*Informacao, error) {
	var i Informacao
	if err := r.DB.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// ListarPorEmpresa devolve os logs da empresa, ocorrência mais recente primeiro.
func (r *Repository) ListarPorEmpresa(empresaID uint) ([]Informacao, error) {
	var logs []Informacao
	err := r.DB.
		Where("empresa_id = ?", empresaID).
		Order("data_ocorrencia DESC").
		Find(&logs).Error
	return logs, err
}

func (r *Repository) ListarTodas() ([]Informacao, error) {
	var logs []Informacao
	err := r.DB.Order("data_ocorrencia DESC").Find(&logs).Error
	return logs, err
}

func (r *Repository) Excluir(id uint) error {
	res := r.DB.Delete(&Informacao{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ContatoPertenceAEmpresa confere o vínculo antes de aceitar um ContatoID
// no log.
func (r *Repository) ContatoPertenceAEmpresa(contatoID, empresaID uint) (bool, error) {
	var total int64
	err := r.DB.Model(&contato.Contato{}).
		Where("id = ? AND empresa_id = ?", contatoID, empresaID).
		Count(&total).Error
	return total > 0, err
}
