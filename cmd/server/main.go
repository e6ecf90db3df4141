package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	commentspg "github.com/reelnotes/reelnotes/comments/postgres"
	fakecommentrepo "github.com/reelnotes/reelnotes/comments/repofake"
	"github.com/reelnotes/reelnotes/internal/config"
	"github.com/reelnotes/reelnotes/internal/db"
	"github.com/reelnotes/reelnotes/server"
	userspg "github.com/reelnotes/reelnotes/users/postgres"
	fakeuserrepo "github.com/reelnotes/reelnotes/users/repofake"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if cfg.Env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	displayAppname(cfg.AppName)

	repos, closeRepos, err := buildRepos(cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	srv, err := server.New(cfg, repos)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildRepos(cfg *config.Config) (server.Repos, func(), error) {
	if cfg.DatabaseDSN == "" {
		log.Warn().Msg("DATABASE_DSN not set, using in-memory stores")
		repos := server.Repos{
			Users:    fakeuserrepo.NewFakeUserRepo(),
			Comments: fakecommentrepo.NewFakeCommentRepo(),
		}
		return repos, func() {}, nil
	}

	conn, err := db.Open(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		return server.Repos{}, nil, fmt.Errorf("db.Open: %w", err)
	}

	repos := server.Repos{
		Users:    userspg.NewRepo(conn),
		Comments: commentspg.NewRepo(conn),
	}
	return repos, func() { _ = conn.Close() }, nil
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
