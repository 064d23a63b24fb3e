package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nucleogestao/api-processos/internal/validador"
)

var (
	// ErrNaoEncontrado indica que o CEP é bem formado mas não existe na base.
	ErrNaoEncontrado = errors.New("cep não encontrado")
	// ErrCEPInvalido indica que o CEP não tem 8 dígitos.
	ErrCEPInvalido = errors.New("cep inválido")
)

const urlPadrao = "https://viacep.com.br/ws"

// Endereco é o resultado da consulta, já no formato que o formulário de
// empresa espera para o auto-preenchimento.
type Endereco struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

type respostaViaCEP struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient cria o cliente do ViaCEP. baseURL vazio usa o serviço público.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = urlPadrao
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BuscarPorCEP consulta o CEP e devolve o endereço correspondente.
func (c *Client) BuscarPorCEP(ctx context.Context, cep string) (*Endereco, error) {
	digitos := validador.ApenasDigitos(cep)
	if len(digitos) != 8 {
		return nil, ErrCEPInvalido
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, digitos)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// O ViaCEP responde 400 para CEP mal formado
	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrCEPInvalido
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep respondeu status %d", resp.StatusCode)
	}

	var dados respostaViaCEP
	if err := json.NewDecoder(resp.Body).Decode(&dados); err != nil {
		return nil, err
	}

	// CEP bem formado mas inexistente volta 200 com {"erro": true}
	if dados.Erro {
		return nil, ErrNaoEncontrado
	}

	return &Endereco{
		CEP:        dados.CEP,
		Logradouro: dados.Logradouro,
		Bairro:     dados.Bairro,
		Cidade:     dados.Localidade,
		UF:         dados.UF,
	}, nil
}
