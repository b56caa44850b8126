package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var supportedDocuments = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
	".json": true,
}

func IsSupported(path string) bool {
	return supportedDocuments[strings.ToLower(filepath.Ext(path))]
}

// Document is a decoded package configuration document.
type Document struct {
	k *koanf.Koanf
}

// LoadDocument reads and decodes the document at path.
// The format is chosen by the file extension.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read document")
	}

	doc, err := ParseDocument(filepath.Ext(path), data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return doc, nil
}

// ParseDocument decodes data in the format of the given file extension.
func ParseDocument(ext string, data []byte) (*Document, error) {
	m := make(map[string]any)

	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
		// nested mappings with non string keys
		maps.IntfaceKeysToStrings(m)
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		return nil, errors.Errorf("unsupported document format: %q", ext)
	}
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load document")
	}
	return &Document{k: k}, nil
}

// Dirs returns the list of directory declarations stored under the dotted key.
// A missing key is an empty list.
func (d *Document) Dirs(key string) ([]any, error) {
	if !d.k.Exists(key) {
		return nil, nil
	}

	switch v := d.k.Get(key).(type) {
	case []any:
		return v, nil
	case []map[string]any:
		result := make([]any, 0, len(v))
		for _, m := range v {
			result = append(result, m)
		}
		return result, nil
	default:
		return nil, errors.Errorf("%s must be a list of tables, got %T", key, v)
	}
}
