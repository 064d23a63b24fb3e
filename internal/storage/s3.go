package storage

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Client abstrai o armazenamento de anexos. A implementação real usa S3;
// os testes usam a versão em memória deste pacote.
type Client interface {
	Enviar(ctx context.Context, pasta, nomeArquivo string, dados []byte) (string, error)
	Remover(ctx context.Context, chave string) error
	URL(chave string) string
}

type s3Client struct {
	bucket string
	client *s3.Client
}

// NewS3Client monta o cliente a partir de AWS_S3_REGION e S3_BUCKET_NAME.
func NewS3Client(ctx context.Context) (Client, error) {
	region := os.Getenv("AWS_S3_REGION")
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET_NAME não definido")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &s3Client{bucket: bucket, client: s3.NewFromConfig(cfg)}, nil
}

// Enviar grava o arquivo sob pasta/uuid-nome e devolve a chave gerada.
// O prefixo uuid evita colisão entre anexos com o mesmo nome.
func (s *s3Client) Enviar(ctx context.Context, pasta, nomeArquivo string, dados []byte) (string, error) {
	if nomeArquivo == "" {
		return "", errors.New("nome do arquivo vazio")
	}

	chave := pasta + "/" + uuid.NewString() + "-" + filepath.Base(nomeArquivo)
	tipoMime := mime.TypeByExtension(filepath.Ext(nomeArquivo))
	if tipoMime == "" {
		tipoMime = http.DetectContentType(dados)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(chave),
		Body:        bytes.NewReader(dados),
		ContentType: aws.String(tipoMime),
	})
	if err != nil {
		return "", err
	}
	return chave, nil
}

func (s *s3Client) Remover(ctx context.Context, chave string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(chave),
	})
	return err
}

func (s *s3Client) URL(chave string) string {
	return "https://" + s.bucket + ".s3.amazonaws.com/" + chave
}
