package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/melih-ucgun/zguest/internal/config"
)

const dialTimeout = 15 * time.Second

// SSHTransport holds the SSH connection to the host carrying the guest root.
type SSHTransport struct {
	client *ssh.Client
	sftp   *sftp.Client
	host   config.Host
}

// NewSSHTransport opens a key-authenticated SSH connection to h. The server
// key must already be listed in ~/.ssh/known_hosts.
func NewSSHTransport(ctx context.Context, h config.Host) (*SSHTransport, error) {
	if h.SSHKeyPath == "" {
		return nil, fmt.Errorf("no ssh key configured for %s", h.Address)
	}
	key, err := os.ReadFile(h.SSHKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ssh key %s: %w", h.SSHKeyPath, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home directory not found: %w", err)
	}
	knownHostsPath := filepath.Join(homeDir, ".ssh", "known_hosts")
	hostKeyCallback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load known_hosts (%s): %w; connect once with ssh to record the host key", knownHostsPath, err)
	}

	clientConfig := &ssh.ClientConfig{
		User:            h.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	port := h.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(h.Address, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}

	return &SSHTransport{client: ssh.NewClient(c, chans, reqs), host: h}, nil
}

// FS opens (once) an SFTP session and returns the remote filesystem.
func (t *SSHTransport) FS() (*SFTPFS, error) {
	if t.sftp == nil {
		c, err := sftp.NewClient(t.client)
		if err != nil {
			return nil, fmt.Errorf("failed to start sftp on %s: %w", t.host.Address, err)
		}
		t.sftp = c
	}
	return NewSFTPFS(t.sftp), nil
}

// Close shuts down the SFTP session and the SSH connection.
func (t *SSHTransport) Close() error {
	if t.sftp != nil {
		t.sftp.Close()
	}
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
