package processo

import (
	"time"

	"gorm.io/gorm"

	"github.com/nucleogestao/api-processos/internal/historico"
)

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Processo, error)
	ListarTodos(db *gorm.DB) ([]Processo, error)
	CriarComHistorico(db *gorm.DB, p *Processo) error
	AtualizarComHistorico(db *gorm.DB, atual, novo *Processo) error
	RegistrarAndamento(db *gorm.DB, id uint, dados AndamentoRequest, dataAndamento time.Time, usuario string) (*Processo, error)
	ExcluirComHistorico(db *gorm.DB, id uint) error
}

type repositoryImpl struct {
	trilha *historico.Repository
}

func NewRepository(trilha *historico.Repository) Repository {
	return &repositoryImpl{trilha: trilha}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Processo, error) {
	var p Processo
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Processo, error) {
	var processos []Processo
	err := db.Order("created_at DESC").Find(&processos).Error
	return processos, err
}

// CriarComHistorico grava o processo e a entrada "created" da trilha na
// mesma transação: ou ambos entram, ou nenhum.
func (r *repositoryImpl) CriarComHistorico(db *gorm.DB, p *Processo) error {
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

	// 2) persiste o processo
	if err := tx.Create(p).Error; err != nil {
		_ = tx.Rollback()
		return err
	}

	// 3) primeira entrada da trilha, com a fotografia inicial
	entrada := historico.Historico{
		ProcessoID:   p.ID,
		Acao:         historico.AcaoCriacao,
		ValoresNovos: p.Fotografia(),
		Usuario:      p.AtualizadoPor,
	}
	if err := r.trilha.WithDB(tx).Criar(&entrada); err != nil {
		_ = tx.Rollback()
		return err
	}

	// 4) commit
	return tx.Commit().Error
}

// AtualizarComHistorico grava o processo atualizado e a entrada da trilha
// (updated, ou status_changed quando o status mudou) na mesma transação.
func (r *repositoryImpl) AtualizarComHistorico(db *gorm.DB, atual, novo *Processo) error {
	acao := historico.AcaoAtualizacao
	if atual.Status != novo.Status {
		acao = historico.AcaoMudancaStatus
	}
	antigos := atual.Fotografia()

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

	// 2) salva o processo
	if err := tx.Save(novo).Error; err != nil {
		_ = tx.Rollback()
		return err
	}

	// 3) entrada da trilha com as duas fotografias
	entrada := historico.Historico{
		ProcessoID:     novo.ID,
		Acao:           acao,
		ValoresAntigos: antigos,
		ValoresNovos:   novo.Fotografia(),
		Usuario:        novo.AtualizadoPor,
	}
	if err := r.trilha.WithDB(tx).Criar(&entrada); err != nil {
		_ = tx.Rollback()
		return err
	}

	// 4) commit
	return tx.Commit().Error
}

// RegistrarAndamento move o processo de setor/data e grava a entrada
// progress_update. Se o andamento informa que o processo formal foi montado,
// o número passa a valer a partir daqui.
func (r *repositoryImpl) RegistrarAndamento(db *gorm.DB, id uint, dados AndamentoRequest, dataAndamento time.Time, usuario string) (*Processo, error) {
	// 1) carrega o processo fora da transação; ausência é NotFound
	var p Processo
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}

	// 2) aplica o andamento
	p.DataOcorrencia = dataAndamento
	p.Local = dados.Local
	if dados.MontouProcesso {
		p.MontouProcesso = true
		p.NumeroProcesso = dados.NumeroProcesso
	}
	p.AtualizadoPor = usuario

	valoresNovos := map[string]interface{}{
		"data":            dataAndamento.Format(time.RFC3339),
		"local":           dados.Local,
		"montou_processo": p.MontouProcesso,
		"numero_processo": p.NumeroProcesso,
	}

	// 3) transação: processo + trilha juntos
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

	if err := tx.Save(&p).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	entrada := historico.Historico{
		ProcessoID:   p.ID,
		Acao:         historico.AcaoAndamento,
		ValoresNovos: valoresNovos,
		Usuario:      usuario,
		Observacao:   dados.Observacao,
	}
	if err := r.trilha.WithDB(tx).Criar(&entrada); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	// 4) commit
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ExcluirComHistorico remove o processo e toda a sua trilha na mesma
// transação, espelhando a política de exclusão de empresa.
func (r *repositoryImpl) ExcluirComHistorico(db *gorm.DB, id uint) error {
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

	// 2) trilha primeiro, depois o dono
	if err := r.trilha.WithDB(tx).ExcluirPorProcesso(id); err != nil {
		_ = tx.Rollback()
		return err
	}
	res := tx.Delete(&Processo{}, id)
	if res.Error != nil {
		_ = tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		_ = tx.Rollback()
		return gorm.ErrRecordNotFound
	}

	// 3) commit
	return tx.Commit().Error
}
