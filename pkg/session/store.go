package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TokenStore persiste o Snapshot da sessão entre execuções do processo.
//
// As implementações devem gravar e limpar o snapshot de forma atômica:
// ou os três campos (access, refresh, user) estão presentes, ou nenhum.
type TokenStore interface {
	Save(snap Snapshot) error
	Load() (Snapshot, bool, error)
	Clear() error
}

// FileStore persiste a sessão em um arquivo JSON local (0600).
type FileStore struct {
	path string
}

// NewFileStore cria um store apontando para o arquivo informado.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("erro ao serializar sessão: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("erro ao criar diretório da sessão: %w", err)
		}
	}

	// Grava em arquivo temporário e renomeia para não deixar estado parcial.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("erro ao gravar sessão: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("erro ao efetivar gravação da sessão: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("erro ao ler sessão: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("erro ao decodificar sessão: %w", err)
	}
	if snap.AccessToken == "" {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erro ao limpar sessão: %w", err)
	}
	return nil
}
