package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/auth"
	"github.com/jmgilman/paiqm/internal/keychain"
	"github.com/jmgilman/paiqm/internal/prompt"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage credentials for manifest hosts",
	Long: `Manage credentials presented when fetching manifests from private hosts.

Credentials are stored in the system keychain, one per host. A host without
a stored credential receives manifest.token (PAIQM_MANIFEST_TOKEN) as a
bearer token when it is set.`,
	Annotations: map[string]string{skipManagerAnnotation: "true"},
}

var authSetCmd = &cobra.Command{
	Use:   "set <host>",
	Short: "Store a credential for a host",
	Example: `  # Bearer token, prompted without echo
  paiqm auth set games.example.com

  # Basic auth read from stdin
  echo 'user:password' | paiqm auth set games.example.com --basic --stdin`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipManagerAnnotation: "true"},
	RunE:        runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:         "status <host>",
	Short:       "Show whether a credential is stored for a host",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipManagerAnnotation: "true"},
	RunE:        runAuthStatus,
}

var authRemoveCmd = &cobra.Command{
	Use:         "remove <host>",
	Short:       "Delete the credential stored for a host",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipManagerAnnotation: "true"},
	RunE:        runAuthRemove,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd, authStatusCmd, authRemoveCmd)

	authSetCmd.Flags().Bool("basic", false, "store a user:password pair for HTTP basic auth")
	authSetCmd.Flags().Bool("stdin", false, "read the credential from stdin instead of prompting")
	authRemoveCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func hostCredentials() *auth.HostCredentials {
	return auth.NewHostCredentials(keychain.New(), "")
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	basic, err := cmd.Flags().GetBool("basic")
	if err != nil {
		return fmt.Errorf("get basic flag: %w", err)
	}
	fromStdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return fmt.Errorf("get stdin flag: %w", err)
	}

	host, err := auth.NormalizeHost(args[0])
	if err != nil {
		return err
	}

	cred := auth.Credential{Type: auth.CredentialTypeBearer}
	title := "Token for " + host
	if basic {
		cred.Type = auth.CredentialTypeBasic
		title = "user:password for " + host
	}

	if fromStdin {
		cred.Value, err = readSecret(cmd.InOrStdin())
	} else {
		cred.Value, err = askSecret(newPrompter(), title, cred.Type)
	}
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if err := cred.Validate(); err != nil {
		return err
	}

	if err := hostCredentials().Store(host, cred); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored %s credential for %s\n", cred.Type, host)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	host, err := auth.NormalizeHost(args[0])
	if err != nil {
		return err
	}

	cred, err := hostCredentials().Stored(host)
	if errors.Is(err, auth.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: not configured\n", host)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", host, cred.Type)
	return nil
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	host, err := auth.NormalizeHost(args[0])
	if err != nil {
		return err
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("get yes flag: %w", err)
	}
	ok, err := confirmRemoval(newPrompter(), host, yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
		return nil
	}

	if err := hostCredentials().Remove(host); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed credential for %s\n", host)
	return nil
}

// askSecret prompts for a credential value, validating it as typ.
func askSecret(p prompt.Prompter, title string, typ auth.CredentialType) (string, error) {
	if !p.Interactive() {
		return "", fmt.Errorf("%w: use --stdin", prompt.ErrNotInteractive)
	}
	return p.Secret(title, func(v string) error {
		return auth.Credential{Type: typ, Value: v}.Validate()
	})
}

// confirmRemoval asks before deleting a credential. Without a terminal the
// removal proceeds.
func confirmRemoval(p prompt.Prompter, host string, yes bool) (bool, error) {
	if yes || !p.Interactive() {
		return true, nil
	}
	ok, err := p.Confirm("Remove the credential for " + host + "?")
	if errors.Is(err, prompt.ErrCanceled) {
		return false, nil
	}
	return ok, err
}

// readSecret reads the first line of r.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
