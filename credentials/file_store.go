package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session as a JSON file on disk, the CLI
// equivalent of the dashboard's browser-local storage. Writes go through
// a temp file and rename so a crash never leaves a torn session behind.
type FileStore struct {
	path string
	lock sync.RWMutex
}

type fileState struct {
	AccessToken  string          `json:"accessToken,omitempty"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	User         json.RawMessage `json:"user,omitempty"`
}

func (s fileState) empty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && len(s.User) == 0
}

// NewFileStore creates a store backed by path. The file is created on
// first write with 0600 permissions.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Session() (*Session, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	state, err := fs.load()
	if err != nil {
		return nil, err
	}
	if state.AccessToken == "" && state.RefreshToken == "" {
		return nil, nil
	}
	return &Session{AccessToken: state.AccessToken, RefreshToken: state.RefreshToken}, nil
}

func (fs *FileStore) SetSession(session *Session) error {
	if session == nil {
		return errors.New("[FileStore.SetSession] session is required")
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	state, err := fs.load()
	if err != nil {
		return err
	}
	state.AccessToken = session.AccessToken
	state.RefreshToken = session.RefreshToken
	return fs.save(state)
}

func (fs *FileStore) SetAccessToken(token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	state, err := fs.load()
	if err != nil {
		return err
	}
	state.AccessToken = token
	return fs.save(state)
}

func (fs *FileStore) User() (json.RawMessage, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	state, err := fs.load()
	if err != nil {
		return nil, err
	}
	if len(state.User) == 0 {
		return nil, nil
	}
	return state.User, nil
}

func (fs *FileStore) SetUser(user json.RawMessage) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	state, err := fs.load()
	if err != nil {
		return err
	}
	state.User = user
	return fs.save(state)
}

func (fs *FileStore) Clear() (bool, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	state, err := fs.load()
	if err != nil {
		return false, err
	}
	if state.empty() {
		return false, nil
	}
	return true, fs.save(fileState{})
}

func (fs *FileStore) load() (fileState, error) {
	var state fileState

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, errors.Wrap(err, "[FileStore] read credentials file")
	}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return fileState{}, errors.Wrap(err, "[FileStore] decode credentials file")
	}
	return state, nil
}

func (fs *FileStore) save(state fileState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore] encode credentials file")
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileStore] create credentials directory")
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return errors.Wrap(err, "[FileStore] create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore] write temp file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore] chmod temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore] close temp file")
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore] replace credentials file")
	}
	return nil
}
