package service

// PreferenceStoreInterface is the client-local key-value storage holding the
// preference flags. Values are plain strings read and written synchronously.
type PreferenceStoreInterface interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
