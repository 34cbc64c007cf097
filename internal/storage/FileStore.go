package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"hnblocks/internal/providers"
	"hnblocks/internal/storage/interfaces"
	"hnblocks/internal/structures"
)

var ErrNotFound = errors.New("key not found")

// FileStore keeps every entry in one compressed JSON object on disk.
// Writes replace the whole file atomically.
type FileStore struct {
	mu         sync.Mutex
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.StoreInterface {
	return &FileStore{
		path:       conf.Settings.FilePath,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileStore) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return nil, err
	}
	val, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return val, nil
}

func (f *FileStore) Put(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.loadForWrite()
	entries[key] = json.RawMessage(value)
	return f.save(entries)
}

// loadForWrite starts from an empty set when the file is unreadable,
// so a damaged file gets replaced on the next write.
func (f *FileStore) loadForWrite() map[string]json.RawMessage {
	entries, err := f.load()
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Inconsistent settings file %s found, starting a new one: %s", f.path, err)
		return make(map[string]json.RawMessage)
	}
	return entries
}

func (f *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", f.path, err)
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(decompressed, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return entries, nil
}

func (f *FileStore) save(entries map[string]json.RawMessage) error {
	jsonData, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
