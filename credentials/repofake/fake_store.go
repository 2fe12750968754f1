package credentialsfakerepo

import (
	"encoding/json"
	"sync"

	"github.com/openpilgrim/go-admin-client/credentials"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests.
type FakeStore struct {
	session *credentials.Session
	user    json.RawMessage
	lock    sync.RWMutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Session() (*credentials.Session, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.session == nil {
		return nil, nil
	}
	copied := *fs.session
	return &copied, nil
}

func (fs *FakeStore) SetSession(session *credentials.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	copied := *session
	fs.session = &copied
	return nil
}

func (fs *FakeStore) SetAccessToken(token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.session == nil {
		fs.session = &credentials.Session{}
	}
	fs.session.AccessToken = token
	return nil
}

func (fs *FakeStore) User() (json.RawMessage, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.user, nil
}

func (fs *FakeStore) SetUser(user json.RawMessage) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.user = user
	return nil
}

func (fs *FakeStore) Clear() (bool, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	cleared := fs.session != nil || len(fs.user) != 0
	fs.session = nil
	fs.user = nil
	return cleared, nil
}
