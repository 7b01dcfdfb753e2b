package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	appfs "github.com/trezcool/katalog/fs"
	logsvc "github.com/trezcool/katalog/services/logger"
	inmemdb "github.com/trezcool/katalog/storage/database/inmem"
	"github.com/trezcool/katalog/storage/seed"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	tables, err := core.LoadTranslations(appfs.FS, appfs.I18nDir)
	errAndDie(logger, "loading translations", err)
	i18n, err := core.NewI18n(conf.DefaultLanguage, tables)
	errAndDie(logger, "setting up i18n", err)

	// set up DB
	repo := inmemdb.NewCatalogRepository(inmemdb.Open())
	snap, err := seed.Load(conf)
	errAndDie(logger, "loading seed catalog", err)
	errAndDie(logger, "seeding catalog", seed.Apply(repo, snap))

	// start CLI
	cli := commandLine{
		svc:  catalog.NewService(repo, core.NewValidate(newTranslator()), conf),
		i18n: i18n,
		lang: conf.DefaultLanguage,
		out:  os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		os.Exit(1)
	}
}

func errAndDie(logger core.Logger, msg string, err error) {
	if err != nil {
		logger.Fatal(fmt.Sprintf("%s: %v", msg, err), err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
