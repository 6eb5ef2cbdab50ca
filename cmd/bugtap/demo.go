package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bugtap/bugtap/pkg/config"
	"github.com/bugtap/bugtap/pkg/httptap"
	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	var (
		addr    string
		cfgPath string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve a demo application wrapped with the configured stages",
		Long: "Serves /echo (echoes the request body) and /stream (an SSE stream " +
			"terminated by [DONE]) with the bugtap pipeline installed, so the " +
			"injected X-Bug-* headers and log records can be inspected with curl.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			chain, err := httptap.NewChain(cfg)
			if err != nil {
				return err
			}
			handler, err := chain.Wrap(demoMux())
			if err != nil {
				return err
			}

			chain.Logger().Info("demo server listening", "addr", addr)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cfgPath, "config", "", "pipeline configuration file (JSON or YAML)")
	return cmd
}

func demoMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if len(body) == 0 {
			body = []byte(`{"echo":null}`)
		}
		_, _ = w.Write(body)
	})

	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		fl, _ := w.(http.Flusher)

		for i := 1; i <= 3; i++ {
			fmt.Fprintf(w, "data: {\"tick\":%d}\n\n", i)
			if fl != nil {
				fl.Flush()
			}
			time.Sleep(200 * time.Millisecond)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	return mux
}
