// relayctl is a small admin CLI talking to a running relay server. It
// manages provider configurations and the pipeline default.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var serverURL string

func main() {
	root := &cobra.Command{
		Use:   "relayctl",
		Short: "Manage relay provider configuration",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOr("RELAY_SERVER", "http://127.0.0.1:8080"), "relay server base URL")

	root.AddCommand(
		newProviderCmd(),
		newSetDefaultCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage reply providers",
	}

	var (
		clientType string
		endpoint   string
		apiKey     string
		model      string
		enabled    bool
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"name":        args[0],
				"client_type": clientType,
				"endpoint":    endpoint,
				"api_key":     apiKey,
				"model":       model,
				"enabled":     enabled,
			}
			var resp map[string]any
			if err := call(cmd.Context(), http.MethodPost, "/providers", body, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	add.Flags().StringVar(&clientType, "client-type", "", "adapter type: chat-completion, message-api, generative-content or generic-json")
	add.Flags().StringVar(&endpoint, "endpoint", "", "provider endpoint URL")
	add.Flags().StringVar(&apiKey, "api-key", "", "provider API key")
	add.Flags().StringVar(&model, "model", "", "model override (optional)")
	add.Flags().BoolVar(&enabled, "enabled", true, "enable the provider immediately")
	_ = add.MarkFlagRequired("client-type")
	_ = add.MarkFlagRequired("endpoint")
	_ = add.MarkFlagRequired("api-key")

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var providers []struct {
				ID         string `json:"id"`
				ClientType string `json:"client_type"`
				Name       string `json:"name"`
				Endpoint   string `json:"endpoint"`
				Model      string `json:"model"`
				Enabled    bool   `json:"enabled"`
			}
			if err := call(cmd.Context(), http.MethodGet, "/providers", nil, &providers); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tMODEL\tENABLED\tENDPOINT")
			for _, p := range providers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\n", p.ID, p.Name, p.ClientType, p.Model, p.Enabled, p.Endpoint)
			}
			return w.Flush()
		},
	}

	enable := setEnabledCmd("enable", true)
	disable := setEnabledCmd("disable", false)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd.Context(), http.MethodDelete, "/providers/"+args[0], nil, nil)
		},
	}

	cmd.AddCommand(add, list, enable, disable, del)
	return cmd
}

func setEnabledCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: use + " a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"enabled": enabled}
			var resp map[string]any
			if err := call(cmd.Context(), http.MethodPut, "/providers/"+args[0], body, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func newSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <provider-id>",
		Short: "Point the pipeline at a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"provider_id": args[0]}
			var resp map[string]any
			if err := call(cmd.Context(), http.MethodPut, "/config/default-provider", body, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, serverURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
