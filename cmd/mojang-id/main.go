package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Amund211/mojangid/internal/adapters/mojang"
	"github.com/Amund211/mojangid/internal/config"
	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/logging"
	"github.com/Amund211/mojangid/internal/ratelimiting"
	"github.com/Amund211/mojangid/internal/reporting"
	"github.com/Amund211/mojangid/internal/telemetry"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/crypto/x509roots/fallback"
)

const serviceName = "mojang-id"

var errNoResult = errors.New("no result")
var errUsage = errors.New("invalid usage")

func main() {
	app := cli.App{
		Name:  serviceName,
		Usage: "look up Minecraft accounts and Mojang service status",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log cache and request details to stderr",
			},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "status",
			Usage:  "status of each Mojang service",
			Action: withClient(runStatus),
		},
		{
			Name:   "blocked-servers",
			Usage:  "hashes of the servers blocked by the session server",
			Action: withClient(runBlockedServers),
		},
		{
			Name:      "identity",
			Usage:     "account holding a name",
			ArgsUsage: "<name>",
			Flags: []cli.Flag{
				&cli.TimestampFlag{
					Name:   "at",
					Usage:  "look up the holder at this time instead of now",
					Layout: time.RFC3339,
				},
			},
			Action: withClient(runIdentity),
		},
		{
			Name:      "uuid",
			Usage:     "uuid of the account currently holding a name",
			ArgsUsage: "<name>",
			Action:    withClient(runUUID),
		},
		{
			Name:      "profile",
			Usage:     "profile of an account",
			ArgsUsage: "<uuid>",
			Action:    withClient(runProfile),
		},
		{
			Name:      "name",
			Usage:     "current name of an account",
			ArgsUsage: "<uuid>",
			Action:    withClient(runName),
		},
		{
			Name:      "names",
			Usage:     "name history of an account",
			ArgsUsage: "<uuid>",
			Action:    withClient(runNames),
		},
	}

	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errNoResult) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type action func(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error)

// Sets up config, logging, reporting and telemetry, runs the lookup and prints the result as JSON
func withClient(run action) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		cfg, err := config.ConfigFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := slog.LevelWarn
		if cctx.Bool("verbose") {
			level = slog.LevelInfo
		}
		logger := slog.New(logging.NewTracingLogHandler(
			logging.NewRootLogger(os.Stderr, level, serviceName).Handler(),
			cfg.GoogleCloudProject(),
		))
		logger.Info("Loaded config", "config", cfg.NonSensitiveString())

		ctx := logging.AddToContext(cctx.Context, logger)

		flush, err := reporting.NewSentryOrMock(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize Sentry: %w", err)
		}
		defer flush()
		ctx = reporting.AddHubToContext(ctx)

		if cfg.OTelEnabled() {
			shutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
			if err != nil {
				return fmt.Errorf("failed to set up OpenTelemetry: %w", err)
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("Failed to shut down OpenTelemetry", "error", err.Error())
				}
			}()
		}

		limiter, stopLimiter := ratelimiting.NewKeyBasedRateLimiter(
			ratelimiting.RefillPerSecond(cfg.RequestsPerSecond()),
			ratelimiting.BurstSize(cfg.Burst()),
		)
		defer stopLimiter()

		client, err := mojang.NewClient(
			mojang.NewHTTPClient(cfg.ConnectTimeout(), cfg.RequestTimeout()),
			mojang.WithEndpoints(mojang.EndpointsFromConfig(cfg)),
			mojang.WithRateLimiter(limiter),
		)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		defer client.Close()

		result, err := run(ctx, cctx, client)
		if errors.Is(err, errUsage) {
			return err
		}
		if err != nil {
			logger.WarnContext(ctx, "Lookup yielded no result", "kind", mojang.ErrorKind(err), "error", err.Error())
			fmt.Fprintln(os.Stderr, "no result")
			return errNoResult
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		return nil
	}
}

type identityOutput struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

func newIdentityOutput(identity domain.PlayerIdentity) identityOutput {
	return identityOutput{
		UUID: identity.UUID.String(),
		Name: identity.Name,
	}
}

type nameHistoryOutput struct {
	Name      string `json:"name"`
	ChangedAt string `json:"changedAt"`
}

type statusOutput struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

func firstArg(cctx *cli.Context, what string) (string, error) {
	arg := cctx.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%w: need to provide %s as an argument", errUsage, what)
	}
	return arg, nil
}

func uuidArg(cctx *cli.Context) (uuid.UUID, error) {
	arg, err := firstArg(cctx, "uuid")
	if err != nil {
		return uuid.UUID{}, err
	}
	// Accepts both the dashed and the hyphenless form
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: invalid uuid: %w", errUsage, err)
	}
	return id, nil
}

func runStatus(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	statuses, err := client.LookupStatus(ctx)
	if err != nil {
		return nil, err
	}

	output := make(map[string]statusOutput, len(statuses))
	for service, status := range statuses {
		output[service] = statusOutput{
			Status:      status.Name(),
			Description: status.Description(),
		}
	}
	return output, nil
}

func runBlockedServers(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	return client.LookupBlockedServers(ctx)
}

func runIdentity(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	name, err := firstArg(cctx, "name")
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if ts := cctx.Timestamp("at"); ts != nil {
		at = *ts
	}

	identity, err := client.LookupIdentity(ctx, name, at)
	if err != nil {
		return nil, err
	}
	return newIdentityOutput(identity), nil
}

func runUUID(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	name, err := firstArg(cctx, "name")
	if err != nil {
		return nil, err
	}

	identity, err := client.LookupIdentity(ctx, name, time.Now())
	if err != nil {
		return nil, err
	}
	return identity.UUID.String(), nil
}

func runProfile(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	id, err := uuidArg(cctx)
	if err != nil {
		return nil, err
	}

	profile, err := client.LookupProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return newIdentityOutput(profile), nil
}

func runName(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	id, err := uuidArg(cctx)
	if err != nil {
		return nil, err
	}

	profile, err := client.LookupProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.Name, nil
}

func runNames(ctx context.Context, cctx *cli.Context, client *mojang.Client) (any, error) {
	id, err := uuidArg(cctx)
	if err != nil {
		return nil, err
	}

	history, err := client.LookupNameHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	output := make([]nameHistoryOutput, 0, len(history))
	for _, entry := range history {
		output = append(output, nameHistoryOutput{
			Name:      entry.Name,
			ChangedAt: entry.FormattedTime(),
		})
	}
	return output, nil
}
