package contato

import "gorm.io/gorm"

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Contato, error)
	ListarPorEmpresa(db *gorm.DB, empresaID uint) ([]Contato, error)
	SalvarComPrincipalUnico(db *gorm.DB, c *Contato) error
	Excluir(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contato, error) {
	var c Contato
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorEmpresa(db *gorm.DB, empresaID uint) ([]Contato, error) {
	var contatos []Contato
	err := db.
		Where("empresa_id = ?", empresaID).
		Order("principal DESC, nome ASC").
		Find(&contatos).Error
	return contatos, err
}

// SalvarComPrincipalUnico grava o contato e, quando ele vira o principal,
// limpa a flag dos demais contatos da empresa na mesma transação.
func (r *repositoryImpl) SalvarComPrincipalUnico(db *gorm.DB, c *Contato) error {
	// 1) inicia transação
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		}
	}()

	// 2) salva o contato
	if err := tx.Save(c).Error; err != nil {
		_ = tx.Rollback()
		return err
	}

	// 3) garante no máximo um principal por empresa
	if c.Principal {
		err := tx.Model(&Contato{}).
			Where("empresa_id = ? AND id <> ? AND principal", c.EmpresaID, c.ID).
			Update("principal", false).Error
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	// 4) commit
	return tx.Commit().Error
}

func (r *repositoryImpl) Excluir(db *gorm.DB, id uint) error {
	res := db.Delete(&Contato{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
