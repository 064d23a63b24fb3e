package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Memoria é um Client em memória para testes e desenvolvimento local
// sem bucket configurado.
type Memoria struct {
	mu       sync.Mutex
	Arquivos map[string][]byte
}

func NewMemoria() *Memoria {
	return &Memoria{Arquivos: map[string][]byte{}}
}

func (m *Memoria) Enviar(_ context.Context, pasta, nomeArquivo string, dados []byte) (string, error) {
	if nomeArquivo == "" {
		return "", errors.New("nome do arquivo vazio")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	chave := pasta + "/" + uuid.NewString() + "-" + nomeArquivo
	m.Arquivos[chave] = dados
	return chave, nil
}

func (m *Memoria) Remover(_ context.Context, chave string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Arquivos[chave]; !ok {
		return errors.New("arquivo não encontrado")
	}
	delete(m.Arquivos, chave)
	return nil
}

func (m *Memoria) URL(chave string) string {
	return "memory://" + chave
}
