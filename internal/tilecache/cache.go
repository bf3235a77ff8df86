package tilecache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache — минимальная способность хранилища тайлов: блобы по URL-ключам.
type Cache interface {
	Match(url string) (bool, error)
	Put(url string, data []byte) error
	Keys() ([]string, error)
}

// Storage открывает и удаляет именованные кэши. Хранилище может быть
// недоступно целиком (нет прав на каталог, занято место) — вызывающая сторона
// обязана деградировать к пустому результату, а не падать.
type Storage interface {
	Open(name string) (Cache, error)
	Delete(name string) (bool, error)
}

// DirStorage хранит именованные кэши в подкаталогах базового каталога.
type DirStorage struct {
	Root string
}

// NewDirStorage создает файловое хранилище кэшей в каталоге root.
func NewDirStorage(root string) *DirStorage {
	return &DirStorage{Root: root}
}

// Open открывает именованный кэш, при необходимости создавая его каталог.
func (s *DirStorage) Open(name string) (Cache, error) {
	dir := filepath.Join(s.Root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось открыть кэш %s: %w", name, err)
	}
	return &dirCache{dir: dir}, nil
}

// Delete удаляет именованный кэш целиком. Возвращает false, если кэша не было.
func (s *DirStorage) Delete(name string) (bool, error) {
	dir := filepath.Join(s.Root, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("не удалось удалить кэш %s: %w", name, err)
	}
	return true, nil
}

// dirCache — файловая реализация Cache: блоб лежит в файле с именем SHA-256 от
// URL, рядом sidecar-файл .url с самим ключом для перечисления.
type dirCache struct {
	dir string
}

func (c *dirCache) entryPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

// Match сообщает, сохранен ли блоб для данного URL.
func (c *dirCache) Match(url string) (bool, error) {
	_, err := os.Stat(c.entryPath(url) + ".tile")
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Put записывает блоб атомарно: сначала во временный файл, затем переименование.
func (c *dirCache) Put(url string, data []byte) error {
	base := c.entryPath(url)
	tmp := base + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("не удалось записать тайл: %w", err)
	}
	if err := os.Rename(tmp, base+".tile"); err != nil {
		return fmt.Errorf("не удалось сохранить тайл: %w", err)
	}
	return os.WriteFile(base+".url", []byte(url), 0o644)
}

// Keys перечисляет URL всех сохраненных тайлов по sidecar-файлам.
func (c *dirCache) Keys() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.url"))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		keys = append(keys, strings.TrimSpace(string(data)))
	}
	return keys, nil
}
