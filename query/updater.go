package query

//go:generate go tool mockgen -destination=../internal/testutil/querymock/updater.go -package=querymock . Updater

// Updater receives the serialization of a [Params] after every change.
// An empty string means the pairs list is empty.
type Updater interface {
	UpdateQuery(serialized string)
}

// UpdaterFunc is an adapter to use an ordinary function as an [Updater].
type UpdaterFunc func(serialized string)

func (f UpdaterFunc) UpdateQuery(serialized string) { f(serialized) }
