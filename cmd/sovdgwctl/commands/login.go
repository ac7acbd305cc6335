package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/internal/cli/credentials"
	"github.com/marmos91/sovdgw/internal/cli/prompt"
)

var (
	loginServer string
	loginToken  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save gateway connection credentials",
	Long: `Save the URL and bearer token used to reach a sovdgw gateway.

Unlike a username/password login, the gateway issues bearer tokens out
of band: an operator with access to the gateway's signing key mints a
service token (scoped, for example, to "diagnostics:write") and hands
it to you. This command only stores the URL and token locally; it does
not contact the gateway, and it neither issues nor validates tokens.

Examples:
  # Store credentials for a gateway
  sovdgwctl login --server http://localhost:8443 --token eyJhbGciOi...

  # Prompt for the token interactively
  sovdgwctl login --server http://localhost:8443`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Gateway URL (required on first login)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	serverURLStr := loginServer
	if serverURLStr == "" {
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return fmt.Errorf("no server URL specified and no saved context found\n\n" +
				"Specify the gateway URL:\n" +
				"  sovdgwctl login --server http://localhost:8443")
		}
		serverURLStr = ctx.ServerURL
	}

	parsedURL, err := url.Parse(serverURLStr)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
		serverURLStr = parsedURL.String()
	}

	token := loginToken
	if token == "" {
		token, err = prompt.InputRequired("Bearer token")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURLStr)
	}

	ctx := &credentials.Context{ServerURL: serverURLStr, Token: token}
	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	fmt.Printf("Saved credentials for %s\n", serverURLStr)
	fmt.Printf("Credentials stored at: %s\n", store.ConfigPath())

	return nil
}
