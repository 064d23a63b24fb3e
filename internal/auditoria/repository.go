package auditoria

import "gorm.io/gorm"

// Repository encapsula o acesso aos registros de auditoria.
// Só existe criação (dentro da transação de exclusão) e leitura.
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

func (r *Repository) Criar(registro *RegistroAuditoria) error {
	return r.DB.Create(registro).Error
}

// ListarTodos devolve os registros mais recentes primeiro.
func (r *Repository) ListarTodos() ([]RegistroAuditoria, error) {
	var registros []RegistroAuditoria
	err := r.DB.Order("excluido_em DESC").Find(&registros).Error
	return registros, err
}
