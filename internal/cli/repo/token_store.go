package repo

// TokenStore описывает абстракцию хранилища cookie сессии кошелька на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}
