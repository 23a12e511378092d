package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/transcribe-web/internal/audio"
	"github.com/nguyentantai21042004/transcribe-web/internal/config"
	"github.com/nguyentantai21042004/transcribe-web/internal/logger"
	"github.com/nguyentantai21042004/transcribe-web/internal/pipeline"
	"github.com/nguyentantai21042004/transcribe-web/internal/server"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcribe"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcript"
	"github.com/nguyentantai21042004/transcribe-web/internal/watcher"
	"github.com/nguyentantai21042004/transcribe-web/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Secrets come from .env / the environment, never from the config file.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, falling back to environment variables")
	}
	creds := config.Credentials{
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
		BackendAPIKey: os.Getenv("BACKEND_API_KEY"),
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "Transcription web app starting")
	log.Info(ctx, "Provider: %s (%s)", cfg.Transcribe.Provider, cfg.Transcribe.Model)
	if creds.AdminToken == "" {
		log.Warn(ctx, "ADMIN_TOKEN not set; admin token login is disabled")
	}

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	ap := audio.New(cfg, exec, log)
	factory := transcribe.NewFactory(cfg)
	p := pipeline.New(cfg, creds, ap, factory, log)
	srv := server.New(cfg, p, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	// Drop folder intake is optional; files dropped there are processed
	// with the backend key and written to the output directory.
	if cfg.Paths.WatchInput != "" {
		if creds.BackendAPIKey == "" {
			log.Warn(ctx, "Drop folder configured but BACKEND_API_KEY not set; intake disabled")
		} else {
			w, err := watcher.New(cfg.Paths.WatchInput, dropHandler(cfg, creds, p, log), log, 1)
			if err != nil {
				log.Error(ctx, "Failed to create drop folder watcher: %v", err)
				os.Exit(1)
			}
			defer w.Stop()
			go func() {
				if err := w.Start(ctx); err != nil && err != context.Canceled {
					errChan <- err
				}
			}()
			log.Info(ctx, "Watching drop folder: %s", cfg.Paths.WatchInput)
		}
	}

	log.Info(ctx, "Listening on %s, press Ctrl+C to stop", cfg.Server.Addr)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	cancel()
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}
	log.Info(ctx, "Stopped")
}

// dropHandler runs a dropped file through the pipeline with server-side
// defaults and writes the transcript next to the drop folder.
func dropHandler(cfg *config.Config, creds config.Credentials, p pipeline.Pipeline, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		res, err := p.Run(ctx, pipeline.Request{
			InputPath:      filePath,
			KeyInput:       creds.BackendAPIKey,
			Condense:       true,
			Segment:        true,
			SegmentMinutes: 5,
			Progress: func(completed, total int) {
				log.Info(ctx, "%s: %d/%d segments", filepath.Base(filePath), completed, total)
			},
		})
		if err != nil {
			return fmt.Errorf("process %s: %w", filePath, err)
		}

		base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		txtPath := filepath.Join(cfg.Paths.Output, base+".txt")
		if err := os.WriteFile(txtPath, []byte(res.Text), 0644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}

		docxPath := filepath.Join(cfg.Paths.Output, base+".docx")
		if err := transcript.WriteDocx(base, res.Fragments, docxPath); err != nil {
			log.Warn(ctx, "Failed to write docx for %s: %v", filePath, err)
		}

		log.Info(ctx, "Transcript written: %s (%d fragments, %d failed segments)",
			txtPath, len(res.Fragments), len(res.SegmentErrors))
		return nil
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Temp, cfg.Paths.Output}
	if cfg.Paths.WatchInput != "" {
		dirs = append(dirs, cfg.Paths.WatchInput)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
