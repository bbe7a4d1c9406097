// Command rescuedge-alert sends a test emergency SMS through the
// configured Twilio account.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rapidrescue/rescuedge/alert"
	"github.com/rapidrescue/rescuedge/application"
	"github.com/rapidrescue/rescuedge/bootstrap"
	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/validation"
)

type options struct {
	to         string
	lat        float64
	lng        float64
	configFile string
	envFile    string
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Failed to send SMS:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "rescuedge-alert",
		Short: "Send a test emergency SMS with a map link",
		Long: `Send the emergency alert SMS for a location through Twilio.

Credentials are read from the twilio section of config.yml, .env or the
TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if appErr := validation.New().
				Phone("to", o.to).
				Coordinates("location", o.lat, o.lng).
				Validate(); appErr != nil {
				return appErr
			}
			return run(cmd.Context(), o, stdout)
		},
	}

	cmd.Flags().StringVar(&o.to, "to", "", "Recipient phone number in E.164 format")
	cmd.Flags().Float64Var(&o.lat, "lat", 19.0760, "Emergency latitude")
	cmd.Flags().Float64Var(&o.lng, "lng", 72.8777, "Emergency longitude")
	cmd.Flags().StringVar(&o.configFile, "config", "", "Config file path (default: search cmd/rescuedge/config.yml)")
	cmd.Flags().StringVar(&o.envFile, "env-file", "", "Path to a .env file with the Twilio credentials")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	cfg, err := application.Load(application.Root{
		Name:       application.RescuEdge.Name,
		ConfigName: o.configFile,
		EnvFile:    o.envFile,
	}, nil)
	if err != nil {
		return err
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithSummaryWriter(io.Discard))
	if err != nil {
		return err
	}
	if cfg.Tracing.Enabled {
		if err := app.RegisterComponent(observability.NewComponent(cfg.Tracing, observability.ServiceInfo{
			Name: cfg.Name + "-alert", Version: cfg.Version, Environment: cfg.Environment,
		})); err != nil {
			return err
		}
	}

	sender, err := alert.NewTwilioSender(cfg.Twilio, app.Logger)
	if err != nil {
		return err
	}
	alerter := alert.NewAlerter(sender, app.Logger)
	location := geo.Point{Lat: o.lat, Lng: o.lng}

	return app.RunTask(ctx, func(ctx context.Context) error {
		fmt.Fprintln(stdout, "📱 Sending test SMS...")
		receipt, err := alerter.SendEmergency(ctx, o.to, location)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "✅ SMS sent successfully!")
		fmt.Fprintf(stdout, "   Message SID: %s\n", receipt.SID)
		fmt.Fprintf(stdout, "   Status: %s\n", receipt.Status)
		fmt.Fprintf(stdout, "   From: %s\n", receipt.From)
		fmt.Fprintf(stdout, "   To: %s\n", receipt.To)
		fmt.Fprintf(stdout, "   Map Link: %s\n", geo.MapLink(location))
		return nil
	})
}
