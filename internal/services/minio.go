package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"

	"github.com/Kaiser-luz/rio-verde-loja/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFile sobe um arquivo de formulário (imagem de produto ou de cor)
// para o MinIO e devolve a URL pública
func UploadFile(objectName string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO não inicializado")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectURL(bucket, objectName), nil
}

// UploadBytes sobe um conteúdo gerado no servidor (ex: ficha técnica em PDF)
func UploadBytes(objectName, contentType string, data []byte) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO não inicializado")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	_, err := database.MinIO.PutObject(context.Background(), bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	return objectURL(bucket, objectName), nil
}

func objectURL(bucket, objectName string) string {
	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
}
