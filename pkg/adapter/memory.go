package adapter

import "sync"

// Memory is an in-memory Storage for tests and ephemeral stores
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory creates an empty in-memory Storage
func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	cloned := make([]byte, len(s.data))
	copy(cloned, s.data)
	return cloned, nil
}

func (s *Memory) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

func (s *Memory) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
