package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/Sternrassler/iracing-data-client/pkg/api"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local proxy exposing /data endpoints, /health and /metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: "8080",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	catalog, err := setup(c)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/data/", dataProxyHandler(catalog))

	addr := ":" + c.String("port")
	log.Info().Str("addr", addr).Msg("starting data proxy server")

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// dataProxyHandler forwards GET requests under /data/ to the service and
// answers with the resolved payload, chunk indirections included.
func dataProxyHandler(catalog *api.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET is supported", http.StatusMethodNotAllowed)
			return
		}
		endpoint := strings.TrimSuffix(r.URL.Path, "/")

		v, err := catalog.Client().FetchResource(r.Context(), endpoint, r.URL.Query())
		if err != nil {
			log.Error().Err(err).Str("endpoint", endpoint).Msg("proxy request failed")
			http.Error(w, fmt.Sprintf("data request failed: %v", err), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := printJSON(w, v); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	}
}
