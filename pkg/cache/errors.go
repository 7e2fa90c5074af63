package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is matched by every construction error caused by a bad capacity.
var ErrInvalidCapacity = errors.New("cache capacity must be at least 1")

// ConfigError reports the rejected capacity.
type ConfigError struct {
	Capacity int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid cache capacity %d: must be at least 1", e.Capacity)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidCapacity
}
