// vectorctl is a command line consumer of the vector-hub proxy: it logs
// in through the session gate when one is configured, checks account
// status, and vectorizes local files or remote URLs.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reusedev/vector-hub/client"
	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/tools"
)

const version = "0.1.0"

var (
	serverURL string
	username  string
	password  string
)

func main() {
	root := newRootCmd()
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectorctl",
		Short: "Client for the vector-hub image vectorization proxy",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// load .env if present, same variables the server reads
			_ = godotenv.Load()
			if serverURL == "" {
				serverURL = os.Getenv("VECTOR_HUB_URL")
			}
			if serverURL == "" {
				serverURL = "http://localhost:3001"
			}
			if username == "" {
				username = os.Getenv("AUTH_USERNAME")
			}
			if password == "" {
				password = os.Getenv("AUTH_PASSWORD")
			}
		},
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "vector-hub base URL (default $VECTOR_HUB_URL or http://localhost:3001)")
	cmd.PersistentFlags().StringVar(&username, "username", "", "gate username when the proxy requires login")
	cmd.PersistentFlags().StringVar(&password, "password", "", "gate password when the proxy requires login")
	cmd.AddCommand(newAccountCmd())
	cmd.AddCommand(newVectorizeCmd())
	return cmd
}

func newClient(ctx context.Context) (*client.Client, error) {
	c := client.New(serverURL)
	required, err := c.AuthRequired(ctx)
	if err != nil {
		return nil, fmt.Errorf("reaching proxy at %s: %w", serverURL, err)
	}
	if required {
		if err := c.Login(ctx, username, password); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
	}
	return c, nil
}

func newAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the upstream subscription plan, state, and remaining credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			status := c.GetAccountStatus(cmd.Context())
			if status == nil {
				fmt.Println("account status unavailable")
				return nil
			}
			fmt.Printf("plan:    %s\nstate:   %s\ncredits: %g\n",
				status.SubscriptionPlan, status.SubscriptionState, status.Credits)
			return nil
		},
	}
}

func newVectorizeCmd() *cobra.Command {
	var (
		imageURL string
		mode     string
		format   string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "vectorize [file]",
		Short: "Vectorize a local image file or a remote image URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && imageURL == "" {
				return fmt.Errorf("provide an image file argument or --url")
			}
			if len(args) == 1 && imageURL != "" {
				return fmt.Errorf("file argument and --url are mutually exclusive")
			}
			c, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			options := client.VectorizeOptions{
				Mode:         consts.Mode(mode),
				OutputFormat: consts.OutputFormat(format),
			}
			var artifact *client.Artifact
			if imageURL != "" {
				artifact, err = c.VectorizeURL(cmd.Context(), imageURL, options)
			} else {
				var data []byte
				data, err = tools.ReadFile(args[0])
				if err != nil {
					return err
				}
				artifact, err = c.VectorizeFile(cmd.Context(), filepath.Base(args[0]), data, options)
			}
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = outputName(args, imageURL, format)
			}
			if err := os.WriteFile(outPath, artifact.Data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%s, %d bytes, charged %g credits)\n",
				outPath, artifact.ContentType, len(artifact.Data), artifact.CreditsCharged)
			return nil
		},
	}
	cmd.Flags().StringVar(&imageURL, "url", "", "remote image URL instead of a local file")
	cmd.Flags().StringVar(&mode, "mode", consts.Test.String(), "processing mode: production, preview, test, test_preview")
	cmd.Flags().StringVar(&format, "format", consts.SVG.String(), "output format: svg, eps, pdf, dxf, png")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path")
	return cmd
}

func outputName(args []string, imageURL, format string) string {
	base := "result"
	if len(args) == 1 {
		name := filepath.Base(args[0])
		base = strings.TrimSuffix(name, filepath.Ext(name))
	} else if imageURL != "" {
		name := filepath.Base(imageURL)
		if ext := filepath.Ext(name); ext != "" {
			base = strings.TrimSuffix(name, ext)
		}
	}
	return base + "." + format
}
