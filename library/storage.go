package library

// SessionKey is the storage slot holding the logged-in user's record.
const SessionKey = "user"

// Storage is a small synchronous key/value slot store.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStorage keeps slots in a map. Nothing survives the process.
type MemoryStorage struct {
	slots map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.slots[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	delete(m.slots, key)
	return nil
}
