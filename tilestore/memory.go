package tilestore

// Memory is a Backend that keeps items in a map. Nothing survives the process.
type Memory struct {
	items map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *Memory) SaveItem(key string, data []byte) error {
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) DeleteItem(key string) error {
	delete(m.items, key)
	return nil
}
