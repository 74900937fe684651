// pagesnap loads a web page in headless Chrome, prints it to PDF and
// uploads the PDF as a multipart form, then shows the server's response.
//
// Usage:
//
//	pagesnap [--url <url|file>] [--output <file.pdf>] [options]
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	pagesnap "github.com/porticus-lab/go-pagesnap"
	"github.com/porticus-lab/go-pagesnap/internal/config"
	"github.com/porticus-lab/go-pagesnap/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "pagesnap",
		Usage: "Snapshot a web page to PDF and upload it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "page to load: http(s) URL, file URL or local HTML file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "also write the PDF to this file",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default: ./pagesnap.toml)",
			},
			&cli.StringFlag{
				Name:  "chrome",
				Usage: "path to the Chrome or Chromium executable",
			},
			&cli.BoolFlag{
				Name:  "no-sandbox",
				Usage: "disable the Chrome sandbox (needed as root)",
			},
			&cli.BoolFlag{
				Name:  "auto-download",
				Usage: "download Chromium if none is installed",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "page load and snapshot timeout, 0 disables",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "console or json",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	log, closer, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closer.Close()
	defer log.Sync()

	opts := options(cfg, log)
	view, err := pagesnap.NewChromeView(opts...)
	if err != nil {
		return err
	}
	defer view.Close()

	scr := newScreen(cmd.Root().Writer)
	scr.layout()

	session := pagesnap.NewSession(view, opts...)
	for st := range session.Start(ctx, cfg.Source.URL) {
		scr.observe(st)
	}
	final := session.State()

	if cfg.Output.Path != "" && final.Snapshot != nil {
		if err := final.Snapshot.WriteToFile(cfg.Output.Path, 0o644); err != nil {
			log.Error("writing snapshot", zap.String("path", cfg.Output.Path), zap.Error(err))
		} else {
			log.Info("snapshot saved", zap.String("path", cfg.Output.Path), zap.Int("bytes", final.Snapshot.Len()))
		}
	}

	scr.nextPage()
	return nil
}

// applyFlags lets command-line flags win over file and environment settings.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("url") {
		cfg.Source.URL = cmd.String("url")
	}
	if cmd.IsSet("output") {
		cfg.Output.Path = cmd.String("output")
	}
	if cmd.IsSet("chrome") {
		cfg.Chrome.Path = cmd.String("chrome")
	}
	if cmd.IsSet("no-sandbox") {
		cfg.Chrome.NoSandbox = cmd.Bool("no-sandbox")
	}
	if cmd.IsSet("auto-download") {
		cfg.Chrome.AutoDownload = cmd.Bool("auto-download")
	}
	if cmd.IsSet("timeout") {
		cfg.Chrome.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
}

// options translates configuration into library options.
func options(cfg *config.Config, log *zap.Logger) []pagesnap.Option {
	orientation := pagesnap.Portrait
	if cfg.Page.Landscape {
		orientation = pagesnap.Landscape
	}
	opts := []pagesnap.Option{
		pagesnap.WithLogger(log),
		pagesnap.WithTimeout(cfg.Chrome.Timeout),
		pagesnap.WithPageConfig(&pagesnap.PageConfig{
			Size:            pagesnap.PageSizeByName[cfg.Page.Size],
			Orientation:     orientation,
			Margin:          pagesnap.UniformMargin(cfg.Page.MarginCM),
			Scale:           cfg.Page.Scale,
			PrintBackground: cfg.Page.PrintBackground,
		}),
	}
	if cfg.Chrome.Path != "" {
		opts = append(opts, pagesnap.WithChromePath(cfg.Chrome.Path))
	}
	if cfg.Chrome.NoSandbox {
		opts = append(opts, pagesnap.WithNoSandbox())
	}
	if cfg.Chrome.AutoDownload {
		opts = append(opts, pagesnap.WithAutoDownload())
	}
	return opts
}
