package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/bridge"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/config"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/launcher"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/logger"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/permission"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/service"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/store"
)

// Variables from a .env file in the working directory are loaded first.
//
// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("could not load configuration")
		os.Exit(1)
	}
	l := logger.New("contacts-bridge", cfg.LogLevel)

	sqlDB, err := store.CreateDatabase(cfg.DSN())
	if err != nil {
		l.Fatal().Err(err).Msg("could not open database")
	}
	s, err := store.New(sqlDB)
	if err != nil {
		l.Fatal().Err(err).Msg("could not prepare statements")
	}
	defer s.Close()

	perms := permission.New(sqlDB, permission.Policy(cfg.PermissionPolicy), l)
	b := bridge.New(s, perms, newStarter(cfg, l), bridge.WithLogger(l))

	router := service.SetupHttpRouter(b, cfg.RequestLogging())
	l.Info().Str("address", cfg.Address()).Msg("starting contacts bridge")
	if err := router.Run(cfg.Address()); err != nil {
		l.Error().Err(err).Msg("server stopped")
	}
}

func newStarter(cfg *config.Config, l zerolog.Logger) bridge.AbilityStarter {
	if cfg.ContactsAppURL == "" {
		return launcher.LogStarter{Logger: l}
	}
	return launcher.NewHTTPStarter(cfg.ContactsAppURL)
}
