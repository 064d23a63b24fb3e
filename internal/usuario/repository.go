package usuario

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	AtualizarSenha(db *gorm.DB, id uint, hash string, precisaRedefinir bool) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Order("nome ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) AtualizarSenha(db *gorm.DB, id uint, hash string, precisaRedefinir bool) error {
	return db.Model(&Usuario{}).Where("id = ?", id).Updates(map[string]interface{}{
		"senha":                   hash,
		"precisa_redefinir_senha": precisaRedefinir,
	}).Error
}
