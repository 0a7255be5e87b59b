package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rlam13/tio/internal/config"
	"github.com/rlam13/tio/internal/creds"
	"github.com/rlam13/tio/internal/tui"
	"github.com/rlam13/tio/pkg/tenable"
)

// newClient loads configuration, obtains credentials (prompting on first
// run), and returns the authenticated API client.
func newClient(cmd *cobra.Command) (*tenable.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store := creds.NewStore(cfg.CredentialsFile)

	var prompter creds.Prompter
	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompter = tui.Prompter{}
	} else {
		prompter = creds.ReaderPrompter{R: cmd.InOrStdin(), W: cmd.OutOrStdout()}
	}

	c, err := store.Obtain(prompter)
	if err != nil {
		return nil, err
	}

	return tenable.NewClient(c.AccessKey, c.SecretKey,
		tenable.WithBaseURL(cfg.BaseURL),
		tenable.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	), nil
}
