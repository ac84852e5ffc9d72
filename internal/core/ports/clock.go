package ports

import "time"

// Clock supplies the current instant to components with temporal rules,
// so boundary behavior can be pinned down in tests.
type Clock interface {
	Now() time.Time
}
