package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/atelier-moveis/atelier-backend/config"
	"github.com/atelier-moveis/atelier-backend/database"
	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/objstore"
	"github.com/atelier-moveis/atelier-backend/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func newServer() *web.Server {
	provider := identity.NewClient(
		config.GetAuthURL(),
		config.GetAuthAnonKey(),
		config.GetAuthServiceKey(),
	)
	store := objstore.NewClient(
		config.GetStorageURL(),
		config.GetStorageBucket(),
		config.GetStorageKey(),
	)
	return web.NewServer(database.GetDB(), provider, store)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogger()
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	server := newServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = newServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			_ = server.Stop()
			return
		}
	}
}

func runMigrate() {
	initLogger()
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()
	fmt.Println("migration complete")
}

func main() {
	// Missing .env is fine; real environments set the variables directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "REST backend for the Atelier catalog admin panel",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run database migration and seeding, then exit",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrate()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
