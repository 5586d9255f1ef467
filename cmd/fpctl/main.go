package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/veldtec/go-r307/auth"
	"github.com/veldtec/go-r307/sensor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "fpctl",
		Usage: "enroll and verify fingerprints on an R307/AS608 sensor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "serial port, overrides the config file",
			},
			&cli.StringFlag{
				Name:  "dataset",
				Usage: "template dataset directory, overrides the config file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log frame-level detail",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "enroll",
				Usage:     "capture a fingerprint and store the template",
				ArgsUsage: "<user>",
				Action:    runEnroll,
			},
			{
				Name:      "verify",
				Usage:     "match a live finger against a stored template",
				ArgsUsage: "<user>",
				Action:    runVerify,
			},
			{
				Name:   "count",
				Usage:  "report how many templates the sensor's flash library holds",
				Action: runCount,
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fpctl:", err)
		os.Exit(1)
	}
}

type env struct {
	cfg   config
	log   sensorLogger
	store *FileStore
}

func setup(c *cli.Context) (env, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return env{}, err
	}
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	if dir := c.String("dataset"); dir != "" {
		cfg.DatasetDir = dir
	}
	return env{
		cfg:   cfg,
		log:   sensorLogger{log: initLogger(c.Bool("verbose"))},
		store: NewFileStore(cfg.DatasetDir),
	}, nil
}

func (e env) sensorOptions() []sensor.Option {
	return []sensor.Option{
		sensor.WithBaudRate(e.cfg.BaudRate),
		sensor.WithReadTimeout(e.cfg.ReadTimeout),
		sensor.WithMaxAttempts(e.cfg.MaxAttempts),
		sensor.WithRetryDelay(e.cfg.RetryDelay),
		sensor.WithLogger(e.log),
		sensor.WithProgressCallback(func(p sensor.Progress) {
			fmt.Fprintf(os.Stderr, "  [%s]\n", p.Phase)
		}),
	}
}

func (e env) service() *auth.Service {
	return auth.New(
		auth.SerialDialer(e.cfg.Port, e.sensorOptions()...),
		auth.WithStore(e.store),
		auth.WithLogger(e.log),
	)
}

func userArg(c *cli.Context) (string, error) {
	user := c.Args().First()
	if user == "" {
		return "", fmt.Errorf("a user id is required")
	}
	return user, nil
}

func runEnroll(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	user, err := userArg(c)
	if err != nil {
		return err
	}

	fmt.Println("Place finger on the sensor...")
	tpl, err := e.service().Enroll(c.Context, user)
	if err != nil {
		return err
	}

	fmt.Printf("Enrolled %s (template digest %s)\n", user, tpl.Digest())
	return nil
}

func runVerify(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	user, err := userArg(c)
	if err != nil {
		return err
	}

	stored, err := e.store.Load(c.Context, user)
	if err != nil {
		return fmt.Errorf("load template for %s: %w", user, err)
	}

	fmt.Println("Place finger on the sensor...")
	outcome, err := e.service().Authenticate(c.Context, user, stored)
	if err != nil {
		return err
	}

	switch {
	case !outcome.Matched:
		fmt.Printf("No match for %s\n", user)
	case outcome.Confidence < e.cfg.MatchThreshold:
		fmt.Printf("Match for %s rejected: confidence %d below threshold %d\n",
			user, outcome.Confidence, e.cfg.MatchThreshold)
	default:
		fmt.Printf("Match for %s (confidence %d)\n", user, outcome.Confidence)
		return nil
	}
	return cli.Exit("", 2)
}

func runCount(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	dev, err := sensor.Open(e.cfg.Port, e.sensorOptions()...)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	n, err := dev.TemplateCount(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Stored templates: %d\n", n)
	return nil
}
