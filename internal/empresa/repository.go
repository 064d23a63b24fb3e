package empresa

import (
	"time"

	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/auditoria"
	"github.com/nucleogestao/api-processos/internal/contato"
	"github.com/nucleogestao/api-processos/internal/informacao"
)

type Repository interface {
	Salvar(db *gorm.DB, e *Empresa) error
	BuscarPorID(db *gorm.DB, id uint) (*Empresa, error)
	BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Empresa, error)
	ListarTodas(db *gorm.DB) ([]Empresa, error)
	ExcluirComAuditoria(db *gorm.DB, id, usuarioID uint, usuarioEmail string) (*auditoria.RegistroAuditoria, error)
}

type repositoryImpl struct {
	registros *auditoria.Repository
}

func NewRepository(registros *auditoria.Repository) Repository {
	return &repositoryImpl{registros: registros}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, e *Empresa) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Empresa, error) {
	var e Empresa
	if err := db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Empresa, error) {
	var e Empresa
	if err := db.Where("cnpj = ?", cnpj).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Empresa, error) {
	var empresas []Empresa
	err := db.Order("razao_social ASC").Find(&empresas).Error
	return empresas, err
}

// ExcluirComAuditoria remove a empresa, todos os contatos e logs que a
// referenciam e grava exatamente um registro de auditoria com a fotografia
// cadastral, tudo ou nada. Qualquer falha desfaz a transação inteira e o
// erro sobe sem tradução.
func (r *repositoryImpl) ExcluirComAuditoria(db *gorm.DB, id, usuarioID uint, usuarioEmail string) (*auditoria.RegistroAuditoria, error) {
	// 1) a empresa precisa existir; ausência é NotFound
	var e Empresa
	if err := db.First(&e, id).Error; err != nil {
		return nil, err
	}

	// 2) dependentes que caem junto
	var contatos []contato.Contato
	if err := db.Where("empresa_id = ?", id).Find(&contatos).Error; err != nil {
		return nil, err
	}
	var logs []informacao.Informacao
	if err := db.Where("empresa_id = ?", id).Find(&logs).Error; err != nil {
		return nil, err
	}

	registro := auditoria.RegistroAuditoria{
		EmpresaID:         e.ID,
		EmpresaNome:       e.NomeFantasia,
		EmpresaCNPJ:       e.CNPJ,
		ContatosExcluidos: len(contatos),
		LogsExcluidos:     len(logs),
		UsuarioID:         usuarioID,
		UsuarioEmail:      usuarioEmail,
		ExcluidoEm:        time.Now(),
		RazaoSocial:       e.RazaoSocial,
		Endereco:          e.EnderecoCompleto(),
		Telefone:          e.Telefone,
		Email:             e.Email,
		Site:              e.Site,
		Observacoes:       e.Observacoes,
	}

	// 3) transação: deletes + auditoria como uma unidade
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		}
	}()

	if err := tx.Where("empresa_id = ?", id).Delete(&contato.Contato{}).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Where("empresa_id = ?", id).Delete(&informacao.Informacao{}).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Delete(&Empresa{}, id).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := r.registros.WithDB(tx).Criar(&registro); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	// 4) commit
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &registro, nil
}
