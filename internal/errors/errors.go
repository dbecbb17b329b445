// Package errors provides typed errors for crimp.
package errors

import "fmt"

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigNotFound      ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid       ErrorCode = "CONFIG_INVALID"
	ErrRegistryAuthFailed  ErrorCode = "REGISTRY_AUTH_FAILED"
	ErrRegistryFetchFailed ErrorCode = "REGISTRY_FETCH_FAILED"
	ErrCacheNotFound       ErrorCode = "CACHE_NOT_FOUND"
	ErrInvalidRepo         ErrorCode = "INVALID_REPO"
	ErrInputNotFound       ErrorCode = "INPUT_NOT_FOUND"
)

// CrimpError represents a typed error with user-friendly hints.
type CrimpError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *CrimpError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CrimpError) Unwrap() error {
	return e.Cause
}

// New creates a new CrimpError.
func New(code ErrorCode, message, hint string) *CrimpError {
	return &CrimpError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new CrimpError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *CrimpError {
	return &CrimpError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigNotFound returns an error for missing config file.
func ConfigNotFound(path string) *CrimpError {
	return &CrimpError{
		Code:    ErrConfigNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Run `crimp init` to create a configuration",
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *CrimpError {
	return &CrimpError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/crimp/config.yaml",
	}
}

// RegistryAuthFailed returns an error for authentication failures.
func RegistryAuthFailed(cause error) *CrimpError {
	return &CrimpError{
		Code:    ErrRegistryAuthFailed,
		Message: "GitHub authentication failed",
		Hint:    "Run `gh auth login` or set CRIMP_GITHUB_TOKEN environment variable",
		Cause:   cause,
	}
}

// RegistryFetchFailed returns an error for fetch failures.
func RegistryFetchFailed(repo string, cause error) *CrimpError {
	return &CrimpError{
		Code:    ErrRegistryFetchFailed,
		Message: fmt.Sprintf("failed to fetch docs from %s", repo),
		Hint:    "Check that the repository exists and you have network access",
		Cause:   cause,
	}
}

// CacheNotFound returns an error when cache doesn't exist.
func CacheNotFound(repo string) *CrimpError {
	return &CrimpError{
		Code:    ErrCacheNotFound,
		Message: fmt.Sprintf("no cached docs for %s", repo),
		Hint:    "Run `crimp docs` with network access to populate the cache",
	}
}

// InvalidRepo returns an error for malformed repo strings.
func InvalidRepo(repo string) *CrimpError {
	return &CrimpError{
		Code:    ErrInvalidRepo,
		Message: fmt.Sprintf("invalid repository format: %s", repo),
		Hint:    "Use format: owner/repo",
	}
}

// InputNotFound returns an error when an input file is missing.
func InputNotFound(path string) *CrimpError {
	return &CrimpError{
		Code:    ErrInputNotFound,
		Message: fmt.Sprintf("input file not found: %s", path),
		Hint:    "Pass a JSON file path, or pipe JSON on stdin",
	}
}
