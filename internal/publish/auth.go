package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Auth configuration
const (
	DefaultAuthFile = "gitauth.secret"

	EnvToken    = "LEGISCAL_TOKEN"
	EnvAuthFile = "LEGISCAL_AUTH_FILE"
	EnvSSHKey   = "LEGISCAL_SSH_KEY"
)

// AuthFilePath returns the token file path: $LEGISCAL_AUTH_FILE, or
// gitauth.secret next to the binary.
func AuthFilePath() (string, error) {
	if path := os.Getenv(EnvAuthFile); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

// LoadToken reads push credentials from the token file
// (format: username:token).
func LoadToken(path string) (username, token string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid auth file format (expected: username:token)")
	}

	return parts[0], parts[1], nil
}

// SaveToken writes push credentials to the token file, readable only by the
// owner.
func SaveToken(path, username, token string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("auth file %s already exists (use --overwrite to replace it)", path)
	}

	line := fmt.Sprintf("%s:%s\n", username, token)
	if err := os.WriteFile(path, []byte(line), 0600); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}

// auth resolves push credentials for the configured remote. HTTPS remotes
// use a token from the environment or the token file; SSH remotes use a key
// file verified against known_hosts. Local path remotes need no auth. A
// missing token is not an error here: public remotes can be cloned
// anonymously, and the push will fail with the host's own error if write
// access is actually required.
func (p *Publisher) auth() (transport.AuthMethod, error) {
	switch {
	case isSSHRemote(p.cfg.Remote):
		return sshAuth()
	case isHTTPRemote(p.cfg.Remote):
		return tokenAuth()
	default:
		return nil, nil
	}
}

func tokenAuth() (transport.AuthMethod, error) {
	if token := os.Getenv(EnvToken); token != "" {
		// Hosts ignore the username when a token is supplied
		return &githttp.BasicAuth{Username: "token", Password: token}, nil
	}

	path, err := AuthFilePath()
	if err != nil {
		return nil, err
	}
	username, token, err := LoadToken(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load auth file: %w", err)
	}

	return &githttp.BasicAuth{Username: username, Password: token}, nil
}

func sshAuth() (transport.AuthMethod, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	keyPath := os.Getenv(EnvSSHKey)
	if keyPath == "" {
		keyPath = filepath.Join(home, ".ssh", "id_ed25519")
	}

	keys, err := gitssh.NewPublicKeysFromFile("git", keyPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key %s: %w", keyPath, err)
	}

	// Verify the host against the user's known_hosts instead of accepting
	// any key
	knownHostsPath := filepath.Join(home, ".ssh", "known_hosts")
	if _, err := os.Stat(knownHostsPath); err == nil {
		callback, err := knownhosts.New(knownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse known_hosts: %w", err)
		}
		keys.HostKeyCallback = callback
	}

	return keys, nil
}
