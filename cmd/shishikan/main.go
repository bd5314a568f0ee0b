package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/search"
	"github.com/shishikan-sg/shishikan/internal/server"
	"github.com/shishikan-sg/shishikan/internal/server/identity"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "shishikan",
		Short:   "Shishikan server, food lists and recommendations",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database and seed the categories",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			filename := dbnameWithPath(konf.String("database_path"))
			codec := konf.String("database_codec")
			if err = database.StormInit(filename, codec); err != nil {
				return errors.Wrap(err, "could not init database")
			}

			db, err := database.StormOpen(filename, codec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			categories := konf.Strings("categories")
			if err = database.Seed(db, categories); err != nil {
				return errors.Wrap(err, "could not seed categories")
			}

			fmt.Printf("Database %s initialized with %d categories\n", filename, len(categories))
			return nil
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database and rebuild the search index from the foods",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			logger, err := newLogger(konf)
			if err != nil {
				return err
			}

			filename := dbnameWithPath(konf.String("database_path"))
			codec := konf.String("database_codec")
			if err = database.StormReIndex(filename, codec); err != nil {
				return errors.Wrap(err, "could not reindex database")
			}

			db, err := database.StormOpen(filename, codec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			index, err := newIndex(konf, db)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := search.Reindex(ctx, logger, db, index, konf.Int("search.concurrency"))
			if err != nil {
				return errors.Wrap(err, "could not rebuild search index")
			}

			logger.WithField("hits", n).Info("search index rebuilt")
			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := load(cfg)
			if err != nil {
				return err
			}

			if konf.String("google.client_id") == "" {
				return errors.New("google.client_id not found")
			}

			logger, err := newLogger(konf)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			index, err := newIndex(konf, db)
			if err != nil {
				return err
			}

			store, images, err := newStore(ctx, konf)
			if err != nil {
				return errors.Wrap(err, "could not init image storage")
			}

			verifier, err := identity.NewGoogle(
				&http.Client{Timeout: 10 * time.Second},
				konf.String("google.tokeninfo_url"),
				konf.String("google.client_id"),
			)
			if err != nil {
				return err
			}

			engine := server.EchoEngine(server.Controller{
				Version:        version,
				Database:       db,
				Index:          index,
				Storage:        store,
				Verifier:       verifier,
				Logger:         logger,
				NoRegistration: konf.Bool("no_registration"),
				AccessTokenTTL: konf.MustDuration("session.access_token_ttl"),
				ImagesPath:     images,
			})
			server.PrintRoutes(engine)

			go func() {
				<-ctx.Done()
				logger.Info("Shutting down server")

				shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := engine.Shutdown(shutdown); err != nil {
					logger.WithError(err).Error("could not shutdown server")
				}
			}()

			address := konf.String("address")
			logger.Infof("Server listening on %s", address)

			err = listen(engine.Server, address)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errors.Wrap(err, "could not run server")
		},
	}
)

// listen serves on a TCP address or on a unix socket given as `unix:/path/to/socket`.
func listen(s *http.Server, address string) error {
	parts := strings.Split(address, ":")
	if len(parts) == 2 && parts[0] == "unix" {
		socketFile := parts[1]
		if _, err := os.Stat(socketFile); err == nil {
			log.Printf("Removing existing %s\n", socketFile)
			os.Remove(socketFile)
		}
		defer os.Remove(socketFile)

		listener, err := net.Listen(parts[0], socketFile)
		if err != nil {
			return err
		}
		return s.Serve(listener)
	}

	s.Addr = address
	return s.ListenAndServe()
}
