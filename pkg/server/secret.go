package server

import "sync"

// SecretStore is the process-wide slot for the webhook handshake secret.
// It starts empty, is overwritten wholesale on each handshake, and is only
// read elsewhere. Handshakes are rare and last-writer-wins is acceptable;
// the mutex exists so concurrent deliveries never observe a torn value.
type SecretStore struct {
	mu     sync.RWMutex
	secret string
}

func NewSecretStore() *SecretStore {
	return &SecretStore{}
}

func (s *SecretStore) Set(secret string) {
	s.mu.Lock()
	s.secret = secret
	s.mu.Unlock()
}

func (s *SecretStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}
