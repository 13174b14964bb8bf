package syscheck

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

const (
	dialTimeout = 5 * time.Second
	httpsPort   = "443"
	sshPort     = "22"
)

// SystemEnvironmentChecker implements repositories.EnvironmentChecker with
// local tool probes and network-layer checks. These are the diagnostic
// engine's auxiliary checks, distinct from repository-specific probing.
type SystemEnvironmentChecker struct{}

// NewSystemEnvironmentChecker creates a new SystemEnvironmentChecker.
func NewSystemEnvironmentChecker() repositories.EnvironmentChecker {
	return &SystemEnvironmentChecker{}
}

// CheckTools verifies the git binary is present and reports its version.
// The engine itself works without it, but operators fixing checkouts by
// hand will not.
func (it *SystemEnvironmentChecker) CheckTools(ctx context.Context) []entities.EnvCheck {
	check := entities.EnvCheck{Name: "git installed"}

	if _, err := exec.LookPath("git"); err != nil {
		check.Detail = "git not found in PATH"
		return []entities.EnvCheck{check}
	}

	out, err := exec.CommandContext(ctx, "git", "--version").Output()
	if err != nil {
		check.Detail = fmt.Sprintf("git --version failed: %v", err)
		return []entities.EnvCheck{check}
	}

	check.OK = true
	check.Detail = strings.TrimSpace(string(out))
	return []entities.EnvCheck{check}
}

// CheckAuth reports whether any credential mechanism is configured at all:
// an explicit token, a git credential helper, or an SSH setup.
func (it *SystemEnvironmentChecker) CheckAuth(
	ctx context.Context,
	auth entities.RemoteAuth,
) []entities.EnvCheck {
	checks := []entities.EnvCheck{}

	token := entities.EnvCheck{Name: "auth token"}
	if auth.Supplied() {
		token.OK = true
		token.Detail = "token configured"
	} else {
		token.Detail = "no token configured (only needed for private HTTPS remotes)"
	}
	checks = append(checks, token)

	helper := entities.EnvCheck{Name: "git credential helper"}
	out, err := exec.CommandContext(ctx, "git", "config", "--get", "credential.helper").Output()
	if err == nil && strings.TrimSpace(string(out)) != "" {
		helper.OK = true
		helper.Detail = strings.TrimSpace(string(out))
	} else {
		helper.Detail = "no credential helper configured"
	}
	checks = append(checks, helper)

	ssh := entities.EnvCheck{Name: "ssh setup"}
	switch {
	case os.Getenv("SSH_AUTH_SOCK") != "":
		ssh.OK = true
		ssh.Detail = "ssh agent socket present"
	case hasDefaultSSHKey():
		ssh.OK = true
		ssh.Detail = "default key file present in ~/.ssh"
	default:
		ssh.Detail = "no ssh agent and no default key files found"
	}
	checks = append(checks, ssh)

	return checks
}

// CheckHost verifies DNS resolution and basic TCP connectivity for one
// remote host, so network-layer problems are distinguishable from
// repository-specific access failures.
func (it *SystemEnvironmentChecker) CheckHost(
	ctx context.Context,
	host string,
	ssh bool,
) []entities.EnvCheck {
	checks := []entities.EnvCheck{}

	dns := entities.EnvCheck{Name: "dns " + host}
	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		dns.Detail = err.Error()
		checks = append(checks, dns)
		// no point dialing an unresolvable host
		return checks
	}
	dns.OK = true
	dns.Detail = fmt.Sprintf("resolves to %d address(es)", len(addrs))
	checks = append(checks, dns)

	port := httpsPort
	if ssh {
		port = sshPort
	}
	dial := entities.EnvCheck{Name: fmt.Sprintf("tcp %s:%s", host, port)}
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		dial.Detail = err.Error()
	} else {
		_ = conn.Close()
		dial.OK = true
		dial.Detail = "reachable"
	}
	checks = append(checks, dial)

	return checks
}

func hasDefaultSSHKey() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	for _, name := range []string{"id_ed25519", "id_rsa", "id_ecdsa"} {
		if _, statErr := os.Stat(filepath.Join(home, ".ssh", name)); statErr == nil {
			return true
		}
	}
	return false
}
