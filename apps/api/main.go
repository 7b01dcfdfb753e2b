package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"

	echoapi "github.com/trezcool/katalog/apps/api/echo"
	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/peerreview"
	"github.com/trezcool/katalog/core/session"
	appfs "github.com/trezcool/katalog/fs"
	emailsvc "github.com/trezcool/katalog/services/email"
	logsvc "github.com/trezcool/katalog/services/logger"
	inmemdb "github.com/trezcool/katalog/storage/database/inmem"
	"github.com/trezcool/katalog/storage/seed"
)

// mailer is an email service whose pending sends can be waited for.
type mailer interface {
	core.EmailService
	Wait()
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	translator := newTranslator()
	validate := core.NewValidate(translator)

	tables, err := core.LoadTranslations(appfs.FS, appfs.I18nDir)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading translations: %v", err), err)
	}
	i18n, err := core.NewI18n(conf.DefaultLanguage, tables)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up i18n: %v", err), err)
	}

	core.ParseEmailTemplates(appfs.FS, appfs.EmailTmplDir, conf, logger)

	// set up DB
	repo := inmemdb.NewCatalogRepository(inmemdb.Open())
	snap, err := seed.Load(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading seed catalog: %v", err), err)
	}
	if err = seed.Apply(repo, snap); err != nil {
		logger.Fatal(fmt.Sprintf("seeding catalog: %v", err), err)
	}

	// set up services
	var mailSvc mailer
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	defer mailSvc.Wait()

	catalogSvc := catalog.NewService(repo, validate, conf)
	reviewSvc := peerreview.NewService(
		catalogSvc,
		mailSvc,
		logger,
		i18n.T(conf.DefaultLanguage, "email.feedback_subject"),
	)
	sess := session.New(catalogSvc, reviewSvc, conf.CurrentStudentID)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			CatalogSvc: catalogSvc,
			Session:    sess,
			I18n:       i18n,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
