package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service archiva los archivos de importación procesados para auditoría
type Service struct {
	client *R2Client
}

func NewService(client *R2Client) *Service {
	return &Service{client: client}
}

func (s *Service) Habilitado() bool {
	return s != nil && s.client != nil
}

// ArchivarImportacion sube el archivo original al bucket y devuelve la
// clave del objeto. Con el archivado deshabilitado devuelve "" sin error.
func (s *Service) ArchivarImportacion(ctx context.Context, filename string, data []byte) (string, error) {
	if !s.Habilitado() {
		return "", nil
	}

	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	key := fmt.Sprintf("imports/%s_%s", time.Now().UTC().Format("20060102T150405Z"), base)

	if err := s.client.PutObject(ctx, key, data, contentTypeXLSX); err != nil {
		return "", err
	}
	return key, nil
}
