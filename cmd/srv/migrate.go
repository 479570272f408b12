package main

import (
	"github.com/questboard/backend/migration"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadContext()
	s.loadDatabase()

	return migration.Migrate(s.ctx)
}
