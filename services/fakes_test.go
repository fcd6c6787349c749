package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/identity"
	"github.com/Dosada05/pickup-games/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeIdentity struct {
	mu          sync.Mutex
	users       map[string]string
	next        int
	createErr   error
	deleteErr   error
	deleteCalls int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: make(map[string]string)}
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	for _, existing := range f.users {
		if existing == email {
			return "", identity.ErrEmailTaken
		}
	}
	f.next++
	uid := fmt.Sprintf("uid-%d", f.next)
	f.users[uid] = email
	return uid, nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[uid]; !ok {
		return identity.ErrIdentityNotFound
	}
	delete(f.users, uid)
	return nil
}

// VerifyToken treats the token as the uid itself.
func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[token]; !ok {
		return "", identity.ErrInvalidToken
	}
	return token, nil
}

func (f *fakeIdentity) has(uid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[uid]
	return ok
}

// failingStore fails every Set on the given collection.
type failingStore struct {
	db.Store
	collection string
	err        error
}

func (s *failingStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if collection == s.collection {
		return s.err
	}
	return s.Store.Set(ctx, collection, id, data)
}

type publishedEvent struct {
	gameID    string
	eventType string
	payload   any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(gameID, eventType string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{gameID: gameID, eventType: eventType, payload: payload})
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.eventType)
	}
	return out
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
