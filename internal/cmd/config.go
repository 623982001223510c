package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/paiqm/internal/config"
)

const redacted = "<redacted>"

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "View and modify configuration",
	Long: `View and modify paiqm configuration.

With no arguments, displays all configuration.
With one argument, displays the value for the specified key.
With two arguments, sets the value for the specified key.

Environment variables (PAIQM_ROOT, PAIQM_REGISTRY, PAIQM_PYTHON,
PAIQM_MANIFEST_TOKEN) take precedence over the file.`,
	Example: `  # Show all config
  paiqm config

  # Show value for a specific key
  paiqm config storage.root

  # Set a value
  paiqm config manifest.timeout 45s

  # Open config file in editor
  paiqm config --edit`,
	Args:              cobra.RangeArgs(0, 2),
	Annotations:       map[string]string{skipManagerAnnotation: "true"},
	ValidArgsFunction: completeConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		editFlag, err := cmd.Flags().GetBool("edit")
		if err != nil {
			return fmt.Errorf("get edit flag: %w", err)
		}
		if editFlag {
			return runEdit(cmd)
		}

		loader, err := config.NewLoader()
		if err != nil {
			return fmt.Errorf("init config loader: %w", err)
		}

		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			return runShowAll(out, loader)
		case 1:
			return runShowKey(out, loader, args[0])
		case 2:
			return runSetKey(out, loader, args[0], args[1])
		}

		return nil
	},
}

func runEdit(cmd *cobra.Command) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return config.ErrNoEditor
	}

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("init config loader: %w", err)
	}

	// Load creates the file when it is missing
	if _, err := loader.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	editorCmd := exec.CommandContext(cmd.Context(), editor, loader.Path()) //nolint:gosec // Editor chosen by the user
	editorCmd.Stdin = cmd.InOrStdin()
	editorCmd.Stdout = cmd.OutOrStdout()
	editorCmd.Stderr = cmd.ErrOrStderr()

	return editorCmd.Run()
}

func runShowAll(out io.Writer, loader *config.Loader) error {
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Manifest.Token != "" {
		cfg.Manifest.Token = redacted
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = out.Write(data)
	return err
}

func runShowKey(out io.Writer, loader *config.Loader, key string) error {
	if err := config.ValidateKey(key); err != nil {
		return err
	}
	if _, err := loader.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	value, err := loader.Get(key)
	if err != nil {
		return err
	}

	if key == "manifest.token" && value != nil && value != "" {
		value = redacted
	}

	switch v := value.(type) {
	case nil:
		fmt.Fprintln(out)
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		fmt.Fprintln(out, v)
	}

	return nil
}

func runSetKey(out io.Writer, loader *config.Loader, key, value string) error {
	// Set writes every key viper holds, so the file must be read first
	if _, err := loader.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := loader.Set(key, value); err != nil {
		return err
	}

	if key == "manifest.token" {
		value = redacted
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("edit", false, "open config file in $EDITOR")
}
