// Command irdata is a small CLI around the iRacing data client: it fetches
// arbitrary data endpoints, prints merged car and track catalogs, and can
// run a small proxy server with health and metrics endpoints.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/Sternrassler/iracing-data-client/pkg/api"
	"github.com/Sternrassler/iracing-data-client/pkg/auth"
	"github.com/Sternrassler/iracing-data-client/pkg/client"
	"github.com/Sternrassler/iracing-data-client/pkg/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "irdata",
		Usage: "Query the iRacing /data API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Human-readable console logs instead of JSON",
			},
		},
		Commands: []*cli.Command{
			fetchCommand(),
			carsCommand(),
			tracksCommand(),
			serveCommand(),
		},
	}
}

// setup loads the config, wires logging and builds the endpoint catalog.
func setup(c *cli.Context) (*api.API, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.String("log-level") != "" {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("pretty") {
		cfg.Pretty = true
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = logging.LogLevel(cfg.LogLevel)
	}
	logCfg.Pretty = cfg.Pretty
	logging.Setup(logCfg)

	session, err := auth.NewSession(auth.Config{
		Email:    cfg.Email,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, err
	}

	dataClient, err := client.New(client.Config{
		Session: session,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	return api.New(dataClient), nil
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch one data endpoint and print the JSON payload",
		ArgsUsage: "ENDPOINT (e.g. /data/lookup/countries)",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "param",
				Aliases: []string{"p"},
				Usage:   "Query parameter as key=value, repeatable",
			},
		},
		Action: fetchAction,
	}
}

func fetchAction(c *cli.Context) error {
	endpoint := c.Args().First()
	if endpoint == "" {
		return cli.Exit("an endpoint argument is required", 1)
	}

	query, err := parseParams(c.StringSlice("param"))
	if err != nil {
		return err
	}

	catalog, err := setup(c)
	if err != nil {
		return err
	}

	v, err := catalog.Client().FetchResource(c.Context, endpoint, query)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, v)
}

func carsCommand() *cli.Command {
	return &cli.Command{
		Name:   "cars",
		Usage:  "Print the car catalog with assets merged in",
		Action: func(c *cli.Context) error { return mergedAction(c, "cars") },
	}
}

func tracksCommand() *cli.Command {
	return &cli.Command{
		Name:   "tracks",
		Usage:  "Print the track catalog with assets merged in",
		Action: func(c *cli.Context) error { return mergedAction(c, "tracks") },
	}
}

func mergedAction(c *cli.Context, kind string) error {
	catalog, err := setup(c)
	if err != nil {
		return err
	}

	var v any
	switch kind {
	case "cars":
		v, err = catalog.CarsWithAssets(c.Context)
	case "tracks":
		v, err = catalog.TracksWithAssets(c.Context)
	}
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, v)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseParams turns key=value pairs into a query.
func parseParams(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		q.Set(key, value)
	}
	return q, nil
}
