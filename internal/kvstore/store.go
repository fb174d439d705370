// Package kvstore provides the string-keyed, string-valued persistent surface
// behind the local storage backend.
package kvstore

// Store is a synchronous key/value surface. Get reports ok=false for missing keys.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
