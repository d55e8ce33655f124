package confile

import "errors"

// Parse failures are matched with errors.Is; handlers wrap these with the
// offending key and value.
var (
	// ErrInvalidDirective is returned for a line with no separator and
	// for malformed cgroup/mount subkeys.
	ErrInvalidDirective = errors.New("invalid configuration directive")

	// ErrUnknownDirective is returned when no dispatch entry matches the key.
	ErrUnknownDirective = errors.New("unknown configuration directive")

	// ErrInvalidValue is returned for a bad enumerated or numeric value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidAddress is returned for a malformed ipv4 or ipv6 literal.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrMissingContext is returned when a per-device directive appears
	// before any lxc.network.type line.
	ErrMissingContext = errors.New("network is not created")

	// ErrPathTooLong is returned when a path exceeds the platform limit.
	ErrPathTooLong = errors.New("path is too long")

	// ErrNameTooLong is returned when a host name does not fit the
	// utsname nodename field.
	ErrNameTooLong = errors.New("name is too long")
)
