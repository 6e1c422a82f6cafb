package session

import (
	"errors"
	"fmt"
	"regexp"
)

// MaxNameLen keeps the daemon socket path well under the 104-byte sun_path
// limit on macOS.
const MaxNameLen = 32

// ErrInvalidName matches every error returned by ValidateName.
var ErrInvalidName = errors.New("invalid session name")

var nameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateName checks that name is usable as a directory and socket name.
func ValidateName(name string) error {
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w %q: longer than %d characters", ErrInvalidName, name, MaxNameLen)
	}
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w %q: use lowercase letters, digits, '-' and '_', starting with a letter or digit", ErrInvalidName, name)
	}
	return nil
}
