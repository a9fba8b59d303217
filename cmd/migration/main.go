package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/config"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/logger"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/store"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 DBNAME=contacts go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		fallback := logger.New("contacts-migration", "")
		fallback.Fatal().Err(err).Msg("could not load configuration")
	}
	l := logger.New("contacts-migration", cfg.LogLevel)

	sqlDB, err := store.CreateDatabase(cfg.DSN())
	if err != nil {
		l.Fatal().Err(err).Msg("could not open database")
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		l.Fatal().Err(err).Str("file", *filePtr).Msg("could not open sql file")
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	statements := 0
	for fileScanner.Scan() {
		line := fileScanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			if _, err := db.Exec(builder.String()); err != nil {
				l.Fatal().Err(err).Int("statement", statements+1).Msg("statement failed")
			}
			statements++
			builder = strings.Builder{}
		}
	}
	if err := fileScanner.Err(); err != nil {
		l.Fatal().Err(err).Msg("could not read sql file")
	}
	l.Info().Int("statements", statements).Msg("migration done")
}
