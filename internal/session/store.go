package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const sessionFile = "session.json"

// Store persists one session as a 0600 JSON file under the user config dir.
type Store struct {
	dir string // overridable for tests; empty means user config dir
}

func NewStore() *Store { return &Store{} }

// NewStoreAt returns a store rooted at dir.
func NewStoreAt(dir string) *Store { return &Store{dir: dir} }

func (st *Store) path() (string, error) {
	dir := st.dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "labclient")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFile), nil
}

// Save writes the session atomically.
func (st *Store) Save(s Session) error {
	path, err := st.path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load returns (nil, nil) when no session has been persisted.
func (st *Store) Load() (*Session, error) {
	path, err := st.path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

// Clear removes the persisted session. Missing file is not an error.
func (st *Store) Clear() error {
	path, err := st.path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
