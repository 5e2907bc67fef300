package configstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Well-known configuration keys.
const (
	KeySelfUpdateMethod = "SelfUpdateMethod"
	KeyBasepath         = "Basepath"
	KeyRsyncMirror      = "RsyncMirror"
	KeyCvsRoot          = "CvsRoot"
	KeyDistBaseURL      = "DistBaseURL"
)

// IniStore persists preferences in an INI file. Keys live in the
// default section.
type IniStore struct {
	path string
	file *ini.File
}

// Load reads the configuration file at path. A missing file yields an
// empty store that will create the file on Save.
func Load(path string) (*IniStore, error) {
	file, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration %s: %w", path, err)
	}
	return &IniStore{path: path, file: file}, nil
}

func (s *IniStore) GetWithDefault(key, def string) string {
	value := s.file.Section("").Key(key).String()
	if value == "" {
		return def
	}
	return value
}

func (s *IniStore) Set(key, value string) {
	s.file.Section("").Key(key).SetValue(value)
}

func (s *IniStore) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("saving configuration %s: %w", s.path, err)
	}
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("saving configuration %s: %w", s.path, err)
	}
	return nil
}

// Path returns the location of the backing file.
func (s *IniStore) Path() string {
	return s.path
}
