package main

import (
	"github.com/trezcool/goose"

	"github.com/jdfgtrompete/explicacoes/core"
	appfs "github.com/jdfgtrompete/explicacoes/fs"
	"github.com/jdfgtrompete/explicacoes/storage/database"
)

var gooseRunFunc = goose.RunFS // mockable

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, appfs.FS, "migrations", arguments...)
}

func (cli *commandLine) createDB() error {
	return database.CreateIfNotExist(core.Conf)
}
