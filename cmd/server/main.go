// Copyright 2025 Tastegraph
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tastegraph/recipechat"
	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/server"
	"github.com/tastegraph/recipechat/storage/redis"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("RECIPECHAT_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := server.LoadConfig()
	if err != nil {
		logger.Error("configuration error", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiConfig := ai.NewConfig(
		ai.WithHost(cfg.AIHost),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
		ai.WithExtractorModel(cfg.ExtractorModel),
	)

	appOpts := []recipechat.AppOption{recipechat.WithAIConfig(aiConfig)}
	if cfg.SessionBackend == "redis" {
		sessions, err := redis.NewSessionRepository(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Error("redis connection failed", "err", err)
			os.Exit(1)
		}
		appOpts = append(appOpts, recipechat.WithSessionRepository(sessions))
	}

	app, err := recipechat.NewApp(ctx, cfg.DataDir, appOpts...)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	manager, err := app.NewManager()
	if err != nil {
		logger.Error("failed to build conversation manager", "err", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, manager)
	if err != nil {
		logger.Error("failed to build server", "err", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
