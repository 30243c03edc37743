package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// archiveLocks maps an absolute archive path to the lock shared by every
// repository opened on it.
var archiveLocks sync.Map

// archiveFile is the TOML document behind an ArchiveRepository.
type archiveFile struct {
	path string
	lock *sync.RWMutex
}

func openArchiveFile(path string) (archiveFile, error) {
	if strings.TrimSpace(path) == "" {
		return archiveFile{}, errors.New("archive path is empty")
	}

	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return archiveFile{}, fmt.Errorf("expand archive path: %w", err)
		}
		path = filepath.Join(homeDir, rest)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return archiveFile{}, fmt.Errorf("resolve archive path: %w", err)
	}

	lock, _ := archiveLocks.LoadOrStore(absPath, &sync.RWMutex{})
	return archiveFile{path: absPath, lock: lock.(*sync.RWMutex)}, nil
}

// load returns an empty current-version document when the file does not
// exist yet.
func (f archiveFile) load() (fileSchema, error) {
	doc := fileSchema{Version: currentSchemaVersion}

	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return doc, nil
	case err != nil:
		return fileSchema{}, fmt.Errorf("read archive file: %w", err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return fileSchema{}, fmt.Errorf("decode archive file: %w", err)
	}
	if err := doc.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	doc.applyDefaults()

	return doc, nil
}

func (f archiveFile) store(doc fileSchema) error {
	doc.applyDefaults()

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode archive file: %w", err)
	}

	return f.replace(data)
}

// replace swaps data in through a synced temp file in the same directory so
// readers never observe a partial archive.
func (f archiveFile) replace(data []byte) (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, archiveDirMode); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp archive file: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if removeErr := os.Remove(tmp.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = errors.Join(err, removeErr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp archive file: %w", err)
	}
	if err := tmp.Chmod(archiveFileMode); err != nil {
		return fmt.Errorf("chmod temp archive file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp archive file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace archive file: %w", err)
	}

	return nil
}
