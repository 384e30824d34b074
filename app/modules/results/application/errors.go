package resultsservice

import "errors"

var (
	// ErrLogUnreadable wraps any failure to open or scan the chat log.
	ErrLogUnreadable = errors.New("chat log unreadable")

	// ErrOutputUnwritable wraps failures writing the dataset.
	ErrOutputUnwritable = errors.New("dataset output unwritable")

	// ErrPersistenceUnavailable is returned when a database operation is
	// requested on a service built without a repository.
	ErrPersistenceUnavailable = errors.New("dataset persistence is not configured")
)
