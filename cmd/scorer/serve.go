package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/talentwire/candidate-scorer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts job applications for scoring and exposes task status.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	rt, err := buildRuntime(context.Background())
	if err != nil {
		return err
	}
	defer rt.close()

	port := servePort
	if rt.cfg.Port != 0 && servePort == 8080 {
		port = rt.cfg.Port
	}

	srv := server.New(server.Config{Port: port}, rt.runner, rt.database, rt.logger)
	return srv.Start()
}
