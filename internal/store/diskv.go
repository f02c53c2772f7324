package store

import (
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/alexanderramin/rotina/internal/domain"
)

// diskvStore keeps one file per collection plus one file per meta key under
// a single base directory. Values are the raw JSON payloads.
type diskvStore struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDiskv creates the default file-backed store rooted at basePath.
func OpenDiskv(basePath string) (Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return nil },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func collectionKey(c domain.Collection) string { return string(c) }
func metaKey(key string) string                { return "meta." + key }

func (s *diskvStore) Get(c domain.Collection) ([]byte, error) {
	key := collectionKey(c)
	if !s.d.Has(key) {
		return nil, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", c, err)
	}
	return data, nil
}

func (s *diskvStore) Set(c domain.Collection, data []byte) error {
	if err := s.d.Write(collectionKey(c), data); err != nil {
		return fmt.Errorf("store: write %s: %w", c, err)
	}
	return s.SetMeta(MetaLastModified, nowMeta())
}

func (s *diskvStore) GetMeta(key string) (string, error) {
	k := metaKey(key)
	if !s.d.Has(k) {
		return "", nil
	}
	data, err := s.d.Read(k)
	if err != nil {
		return "", fmt.Errorf("store: read meta %s: %w", key, err)
	}
	return string(data), nil
}

func (s *diskvStore) SetMeta(key, value string) error {
	if err := s.d.Write(metaKey(key), []byte(value)); err != nil {
		return fmt.Errorf("store: write meta %s: %w", key, err)
	}
	return nil
}

func (s *diskvStore) DeleteMeta(key string) error {
	k := metaKey(key)
	if !s.d.Has(k) {
		return nil
	}
	if err := s.d.Erase(k); err != nil {
		return fmt.Errorf("store: erase meta %s: %w", key, err)
	}
	return nil
}

func (s *diskvStore) Close() error { return nil }
