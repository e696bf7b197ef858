// Package storage guarda las imágenes de producto en un directorio (write-once por nombre).
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// MsgFileExists mensaje devuelto cuando el nombre ya existe en el almacén.
const MsgFileExists = "Já existe um arquivo com este nome!"

// ImageStore escribe archivos de imagen bajo un directorio base.
type ImageStore struct {
	fs afero.Fs
}

// NewLocalImageStore crea el directorio si falta y restringe el acceso a él.
func NewLocalImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return NewImageStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewImageStore usa un afero.Fs arbitrario (en pruebas, afero.NewMemMapFs()).
func NewImageStore(fs afero.Fs) *ImageStore {
	return &ImageStore{fs: fs}
}

// Save escribe data con el nombre dado. Si ya existe devuelve un Conflict y no toca el archivo.
func (s *ImageStore) Save(name string, data []byte) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return domain.Conflict(MsgFileExists)
		}
		return fmt.Errorf("abrir imagen %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return fmt.Errorf("escribir imagen %s: %w", name, err)
	}
	return f.Close()
}

// Remove borra la imagen; se usa para compensar cuando falla la persistencia del producto.
func (s *ImageStore) Remove(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar imagen %s: %w", name, err)
	}
	return nil
}

// cleanName rechaza nombres con rutas: sólo se aceptan nombres de archivo planos.
func cleanName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", domain.Invalid("Nome de arquivo de imagem inválido.")
	}
	return name, nil
}
