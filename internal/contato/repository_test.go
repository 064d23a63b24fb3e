package contato

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	banco, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}
	if err := banco.AutoMigrate(&Contato{}); err != nil {
		t.Fatalf("erro no AutoMigrate: %v", err)
	}
	return banco
}

func TestSalvarComPrincipalUnico(t *testing.T) {
	banco := abrirBanco(t)
	repo := NewRepository()

	a := Contato{EmpresaID: 1, Nome: "Ana", Email: "ana@exemplo.com.br", Principal: true}
	if err := repo.SalvarComPrincipalUnico(banco, &a); err != nil {
		t.Fatalf("erro ao salvar: %v", err)
	}

	b := Contato{EmpresaID: 1, Nome: "Bruno", Email: "bruno@exemplo.com.br", Principal: true}
	if err := repo.SalvarComPrincipalUnico(banco, &b); err != nil {
		t.Fatalf("erro ao salvar: %v", err)
	}

	// Contato de outra empresa não entra na disputa
	c := Contato{EmpresaID: 2, Nome: "Carla", Email: "carla@exemplo.com.br", Principal: true}
	if err := repo.SalvarComPrincipalUnico(banco, &c); err != nil {
		t.Fatalf("erro ao salvar: %v", err)
	}

	var principais []Contato
	if err := banco.Where("empresa_id = ? AND principal", 1).Find(&principais).Error; err != nil {
		t.Fatalf("erro ao consultar: %v", err)
	}
	if len(principais) != 1 || principais[0].Nome != "Bruno" {
		t.Errorf("esperava só Bruno como principal da empresa 1, veio %+v", principais)
	}

	var deOutraEmpresa Contato
	if err := banco.First(&deOutraEmpresa, c.ID).Error; err != nil {
		t.Fatalf("erro ao recarregar: %v", err)
	}
	if !deOutraEmpresa.Principal {
		t.Error("principal da empresa 2 não deveria ter sido limpo")
	}
}

func TestListarPorEmpresaOrdenacao(t *testing.T) {
	banco := abrirBanco(t)
	repo := NewRepository()

	for _, c := range []Contato{
		{EmpresaID: 1, Nome: "Zeca", Email: "z@exemplo.com.br"},
		{EmpresaID: 1, Nome: "Ana", Email: "a@exemplo.com.br", Principal: true},
		{EmpresaID: 1, Nome: "Bruno", Email: "b@exemplo.com.br"},
	} {
		c := c
		if err := banco.Create(&c).Error; err != nil {
			t.Fatalf("erro ao semear: %v", err)
		}
	}

	contatos, err := repo.ListarPorEmpresa(banco, 1)
	if err != nil {
		t.Fatalf("erro ao listar: %v", err)
	}
	if len(contatos) != 3 {
		t.Fatalf("esperava 3 contatos, veio %d", len(contatos))
	}
	// Principal primeiro, depois alfabético
	if contatos[0].Nome != "Ana" || contatos[1].Nome != "Bruno" || contatos[2].Nome != "Zeca" {
		t.Errorf("ordem errada: %s, %s, %s", contatos[0].Nome, contatos[1].Nome, contatos[2].Nome)
	}
}
