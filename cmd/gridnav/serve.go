package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/o0olele/gridnav-go/config"
	"github.com/o0olele/gridnav-go/server"
)

func ServeCmd() *cobra.Command {
	var configFile string
	c := &cobra.Command{
		Use:   "serve",
		Short: "run the navigation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			logger := log.New(os.Stdout, "[gridnav] ", log.LstdFlags|log.Lmicroseconds)
			s, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			return s.Run()
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file, built-in defaults when empty")
	return c
}
