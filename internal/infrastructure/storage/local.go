// Package storage guarda los archivos de evidencia en disco local y devuelve
// la referencia opaca que las órdenes adjuntan como evidence_photo_url.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalEvidenceStore escribe blobs bajo un directorio base. La referencia
// devuelta es relativa al directorio, no una ruta absoluta del host.
type LocalEvidenceStore struct {
	dir string
}

// NewLocalEvidenceStore crea el directorio base si no existe.
func NewLocalEvidenceStore(dir string) (*LocalEvidenceStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalEvidenceStore{dir: dir}, nil
}

// Save persiste el contenido con un nombre generado y devuelve la referencia.
// Conserva la extensión del archivo original para servirlo con content-type.
func (s *LocalEvidenceStore) Save(originalName string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("save evidence: %w", err)
	}
	return "/uploads/" + name, nil
}

// Dir devuelve el directorio base, para montarlo como estático en el router.
func (s *LocalEvidenceStore) Dir() string { return s.dir }
