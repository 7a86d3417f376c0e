package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"sanctuary/internal/config"
	"sanctuary/internal/database"
	"sanctuary/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [up|down|version]\n", os.Args[0])
	}
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLiteDB(cfg.DB.Path, cfg.DB.BusyTimeout)
	if err != nil {
		l.Fatal("Failed to open database", zap.Error(err))
	}

	m, err := database.NewMigrator(db.DB)
	if err != nil {
		l.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		l.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		l.Fatal("Failed to read migration version", zap.Error(err))
	}
	l.Info("Migration finished",
		zap.String("command", command),
		zap.String("path", cfg.DB.Path),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
}
