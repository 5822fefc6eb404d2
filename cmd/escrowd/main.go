package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	escrowd "github.com/iov-one/nftescrow/cmd/escrowd/app"
	"github.com/iov-one/nftescrow/commands/server"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is set during the build.
var Version = "dev"

var (
	flagHome   = "home"
	flagConfig = "config"
	varHome    *string
	varConfig  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varConfig = flag.String(flagConfig, "", "node configuration file (default $HOME/.escrowd/config/escrowd.toml)")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("escrowd")
	fmt.Println("          NFT escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app state in genesis file: init [denom] [owner]")
	fmt.Println("start     Run the abci server: start [-bind=addr] [-debug]")
	fmt.Println("validate  Validate the app state of genesis files: validate <genesis.json>...")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.escrowd")
  -config string
        node configuration file (default "$HOME/.escrowd/config/escrowd.toml")`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	if err := run(cmd, rest); err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	switch cmd {
	case "help":
		helpMessage()
		return nil
	case "version":
		fmt.Println(Version)
		return nil
	}

	configPath := *varConfig
	if configPath == "" {
		configPath = escrowd.ConfigFile(*varHome)
	}
	cfg, err := escrowd.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger, closer, err := escrowd.NewLogger(cfg, *varHome, os.Stdout)
	if err != nil {
		return err
	}
	defer closer.Close()

	switch cmd {
	case "init":
		return server.InitCmd(escrowd.GenInitOptions, logger, *varHome, args)
	case "start":
		reg := prometheus.NewRegistry()
		if cfg.MetricsAddress != "" {
			srv := escrowd.ServeMetrics(cfg.MetricsAddress, reg, logger)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("metrics server shutdown", "err", err)
				}
			}()
		}
		// flags given on the command line take precedence over the file
		startArgs := append([]string{"-bind=" + cfg.Bind}, args...)
		return server.StartCmd(escrowd.AppGenerator(cfg, reg), logger, *varHome, startArgs)
	case "validate":
		return server.ValidateGenesis(escrowd.Initializers(), args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
