package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"streamer_info/internal/cache"
	twitchGQLClient "streamer_info/internal/client/twitch-gql-client"
	"streamer_info/internal/config"
	widgetHandler "streamer_info/internal/handlers/widget"
	"streamer_info/internal/service/render"
	widgetService "streamer_info/internal/service/widget"
)

// Version is overridden with -ldflags "-X main.Version=..."
var Version = "0.1.0"

var (
	envFile string
	addr    string

	rootCmd = &cobra.Command{
		Use:          "streamer-info",
		Short:        "Serves dynamically generated images with the stream status of Twitch channels",
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides ADDR")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return errors.Wrap(err, "config.Load")
	}

	if addr != "" {
		cfg.Addr = addr
	}

	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	templates, err := render.LoadTemplates(cfg.TemplateDir)
	if err != nil {
		return errors.Wrap(err, "LoadTemplates")
	}

	renderer, err := render.NewRenderer(templates)
	if err != nil {
		return errors.Wrap(err, "NewRenderer")
	}

	gqlClient := twitchGQLClient.NewTwitchGQLClient(twitchGQLClient.Options{
		URI:           cfg.TwitchGQLURL,
		ClientID:      cfg.TwitchClientID,
		Timeout:       cfg.GQLTimeout,
		AvatarTimeout: cfg.AvatarTimeout,
	})

	ws := widgetService.NewService(cache.NewFreshnessCache(), gqlClient, renderer, widgetService.Options{
		Version:         Version,
		FreshnessWindow: cfg.FreshnessWindow,
	})

	handler := widgetHandler.NewRouter(widgetHandler.NewWidgetHandler(ws), cfg.CORSOrigins)

	srv := &http.Server{
		Handler:     handler,
		Addr:        cfg.Addr,
		ReadTimeout: 5 * time.Second,
		// upstream channel query and avatar download run inside the request
		WriteTimeout: cfg.GQLTimeout + cfg.AvatarTimeout + 5*time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("server start on %s (version %s)...", cfg.Addr, Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "ListenAndServe")
	case <-ctx.Done():
	}

	logrus.Info("server stop...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
