package historico

import "gorm.io/gorm"

// Repository encapsula o acesso à trilha de mudanças.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Criar insere uma entrada. Não existe Update/Delete: a trilha é append-only.
func (r *Repository) Criar(h *Historico) error {
	return r.DB.Create(h).Error
}

// ListarPorProcesso devolve a trilha do processo, mais recente primeiro.
func (r *Repository) ListarPorProcesso(processoID uint) ([]Historico, error) {
	var entradas []Historico
	err := r.DB.
		Where("processo_id = ?", processoID).
		Order("created_at DESC, id DESC").
		Find(&entradas).Error
	return entradas, err
}

// ListarPorProcessoAsc devolve a trilha em ordem cronológica, usada pela
// exportação de planilha.
func (r *Repository) ListarPorProcessoAsc(processoID uint) ([]Historico, error) {
	var entradas []Historico
	err := r.DB.
		Where("processo_id = ?", processoID).
		Order("created_at ASC, id ASC").
		Find(&entradas).Error
	return entradas, err
}

// ExcluirPorProcesso remove todas as entradas do processo. Só é chamado
// dentro da transação que exclui o próprio processo.
func (r *Repository) ExcluirPorProcesso(processoID uint) error {
	return r.DB.Where("processo_id = ?", processoID).Delete(&Historico{}).Error
}
