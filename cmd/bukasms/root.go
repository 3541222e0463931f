package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oggyb/buka-sms/internal/config"
	"github.com/oggyb/buka-sms/internal/sms"
	"github.com/spf13/cobra"
)

const (
	flagAppID     = "app-id"
	flagAppSecret = "app-secret"
	flagAPIKey    = "api-key"
	flagSenderID  = "sender-id"
	flagBaseURL   = "base-url"
	flagTo        = "to"
	flagTimeout   = "timeout"
)

// newRootCmd builds the CLI. opts are passed to sms.NewClient.
func newRootCmd(opts ...sms.Option) *cobra.Command {
	root := &cobra.Command{
		Use:           "bukasms",
		Short:         "Send SMS through the Buka API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnvFile()
		},
	}

	f := root.PersistentFlags()
	f.String(flagAppID, "", "Buka app id (overrides BUKA_APP_ID)")
	f.String(flagAppSecret, "", "Buka app secret (overrides BUKA_APP_SECRET)")
	f.String(flagAPIKey, "", "Buka API key (overrides BUKA_API_KEY)")
	f.String(flagSenderID, "", "sender id (overrides BUKA_SENDER_ID)")
	f.String(flagBaseURL, "", "send endpoint (overrides BUKA_BASE_URL)")

	root.AddCommand(newSendCmd(opts))
	return root
}

func newSendCmd(opts []sms.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [flags] <content>",
		Short: "Send one message to up to 100 numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetStringSlice(flagTo)
			timeout, _ := cmd.Flags().GetDuration(flagTimeout)

			client, err := sms.NewClient(resolveBuka(cmd).SMS(), opts...)
			if err != nil {
				return err
			}

			req, err := client.To(to...)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := req.Send(ctx, args[0])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringSlice(flagTo, nil, "recipient numbers, comma separated or repeated")
	cmd.Flags().Duration(flagTimeout, 15*time.Second, "request timeout")
	_ = cmd.MarkFlagRequired(flagTo)
	return cmd
}

// resolveBuka reads BUKA_* from the environment and lets explicit flags win.
func resolveBuka(cmd *cobra.Command) config.Buka {
	flag := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return strings.TrimSpace(v)
	}
	return config.BukaFromEnv().Override(config.Buka{
		AppID:     flag(flagAppID),
		AppSecret: flag(flagAppSecret),
		APIKey:    flag(flagAPIKey),
		SenderID:  flag(flagSenderID),
		BaseURL:   flag(flagBaseURL),
	})
}

func printResult(w io.Writer, res *sms.Result) error {
	fmt.Fprintf(w, "provider status: %d\n", res.StatusCode)

	decoded, err := res.Decode()
	if err != nil {
		fmt.Fprintf(w, "%s\n", res.Body)
		return nil
	}
	fmt.Fprintf(w, "status=%s reason=%s success=%s fail=%s\n", decoded.Status, decoded.Reason, decoded.Success, decoded.Fail)
	for _, m := range decoded.Array {
		fmt.Fprintf(w, "  %s -> %s\n", m.Number, m.MsgID)
	}
	if !decoded.OK() {
		return fmt.Errorf("provider rejected the request: %s", decoded.Reason)
	}
	return nil
}
