package store

// Store defines the interface for local persisted state. The client
// keeps exactly two values: the auth token and the serialized user.
type Store interface {
	SaveCredentials(token string, user []byte) error
	Credentials() (token string, user []byte, err error)
	ClearCredentials() error

	Close() error
}
