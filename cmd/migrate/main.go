// migrate aplica o revierte las migraciones SQL embebidas en el binario.
//
// Uso: go run ./cmd/migrate [up|down|version|force N]
// Sin argumentos aplica las pendientes (up). down revierte solo el último paso.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	dsn := cfg.DB.ConnectionString()

	if cmd == "up" {
		if err := postgres.MigrateUp(dsn, log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		return
	}

	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	defer m.Close()

	switch cmd {
	case "down":
		err = m.Steps(-1)
	case "force":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Uso: migrate force N")
			os.Exit(2)
		}
		var v int
		if v, err = strconv.Atoi(os.Args[2]); err == nil {
			err = m.Force(v)
		}
	case "version":
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (up, down, version, force N)\n", cmd)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migraciones")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal().Err(err).Msg("leer versión del esquema")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Str("cmd", cmd).Msg("esquema")
}
