package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"catalog-client/internal/app"
	"catalog-client/internal/config"
	"catalog-client/internal/console"
	"catalog-client/internal/database"
	"catalog-client/internal/logging"
	"catalog-client/internal/menu"
	"catalog-client/internal/session"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s <dbname> <port> <user>\n", filepath.Base(os.Args[0]))
		return
	}
	logger := logging.Init(os.Stderr)

	con := console.New(os.Stdin, os.Stdout, os.Stderr)
	con.Greeting()

	con.Println("Connecting to database...")
	con.Println("Connection URL: " + cfg.DisplayURL() + "\n")
	db, err := database.Open(cfg, os.Stdout)
	if err != nil {
		con.Errorln("Error - " + err.Error())
		con.Errorln("Make sure you started postgres on this machine")
		os.Exit(-1)
	}
	con.Println("Done")

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			fmt.Fprint(os.Stdout, "Disconnecting from database...")
			if err := db.Close(); err != nil {
				log.Printf("close database: %v", err)
			}
			fmt.Fprintln(os.Stdout, "Done\n\nBye !")
		})
	}

	// Input reads cannot be interrupted, so a signal cleans up and exits from here.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logger.Info("signal received", "signal", s.String())
		cleanup()
		os.Exit(0)
	}()

	env := &app.Env{
		DB:      db,
		Console: con,
		Session: session.New(),
		Log:     logger,
	}

	err = menu.Run(context.Background(), env)
	switch {
	case err == nil, errors.Is(err, console.ErrInputClosed):
	case database.IsConnectionLost(err):
		con.Errorln(err)
		logger.Error("connection lost", "error", err)
	default:
		con.Errorln(err)
	}
	cleanup()
}
