package interfaces

// StoreInterface is a small named key-value store for client preferences.
type StoreInterface interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}
