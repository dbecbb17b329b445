package registry

import (
	"os"
	"os/exec"
	"strings"

	"github.com/Sridharvn/crimp/internal/errors"
)

const (
	// EnvGitHubToken is the environment variable for fallback token auth.
	EnvGitHubToken = "CRIMP_GITHUB_TOKEN"
)

// GetToken resolves a GitHub token using the auth chain.
// Priority: 1) gh auth token, 2) CRIMP_GITHUB_TOKEN env
func GetToken() (string, error) {
	// Try gh CLI first
	token, err := GetTokenFromGHCLI()
	if err == nil && token != "" {
		return token, nil
	}

	// Fall back to environment variable
	token = GetTokenFromEnv()
	if token != "" {
		return token, nil
	}

	return "", errors.RegistryAuthFailed(err)
}

// GetTokenFromGHCLI executes `gh auth token` to get token.
func GetTokenFromGHCLI() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// GetTokenFromEnv reads CRIMP_GITHUB_TOKEN.
func GetTokenFromEnv() string {
	return os.Getenv(EnvGitHubToken)
}

// AuthMethod returns a string describing the current auth method.
func AuthMethod() string {
	if _, err := GetTokenFromGHCLI(); err == nil {
		return "gh CLI"
	}
	if GetTokenFromEnv() != "" {
		return EnvGitHubToken
	}
	return "unauthenticated"
}

// NewBestClient returns an authenticated client when a token is available,
// otherwise an unauthenticated one. Public docs repos only need the latter.
func NewBestClient() (*Client, error) {
	if token, err := GetToken(); err == nil && token != "" {
		return NewClientWithToken(token)
	}
	return NewUnauthenticatedClient()
}
