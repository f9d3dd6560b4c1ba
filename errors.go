package params

import "errors"

// Sentinel errors returned (wrapped) by the registry. Callers match them with
// errors.Is.
var (
	// ErrInvalidKeyFormat reports a malformed parameter name: empty, not
	// starting with a letter, a '-' not followed by a letter, or any other
	// non-alphanumeric character.
	ErrInvalidKeyFormat = errors.New("invalid parameter name")

	// ErrMalformedQuotedString reports an unterminated quoted value or an
	// unknown escape sequence inside one.
	ErrMalformedQuotedString = errors.New("malformed quoted string")

	// ErrDuplicateKey reports the same canonical key appearing twice within
	// one command line or one parameter file.
	ErrDuplicateKey = errors.New("duplicate parameter")

	// ErrRegistrationNotClosed reports a resolution attempted while
	// registration is still open.
	ErrRegistrationNotClosed = errors.New("parameter registration not closed")

	// ErrAlreadyClosed reports a registration attempted after closing, or a
	// second EndRegistration call.
	ErrAlreadyClosed = errors.New("parameter registration already closed")

	// ErrUnknownParameter reports resolving, hiding, or defaulting a name
	// that was never registered.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrConflictingRegistration reports the same name registered twice with
	// a different type or usage string.
	ErrConflictingRegistration = errors.New("conflicting parameter registration")

	// ErrConfigNotFound reports a missing parameter file. It is typically
	// non-fatal: the caller proceeds with defaults.
	ErrConfigNotFound = errors.New("parameter file not found")

	// ErrCLIParse wraps a command-line parse failure surfaced through Builder.
	ErrCLIParse = errors.New("command-line parsing failed")

	// ErrHelpRequested is returned by Builder.Build when help output was
	// printed; the caller should exit with status zero.
	ErrHelpRequested = errors.New("help requested")
)
