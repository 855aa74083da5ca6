package app

import (
	"context"
	"log"

	"github.com/tijoseymathew/langextract-docling/internal/config"
	"github.com/tijoseymathew/langextract-docling/internal/core"
	objectclient "github.com/tijoseymathew/langextract-docling/internal/core/object-client"
	"github.com/tijoseymathew/langextract-docling/internal/extraction"
	"github.com/tijoseymathew/langextract-docling/internal/resolver"
)

type App struct {
	Engine *extraction.Engine
	Server *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	var objects core.ObjectFetcher
	if cfg.AwsAccessKey != "" && cfg.AwsSecretKey != "" {
		var err error
		objects, err = objectclient.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("AWS credentials not set; s3:// inputs disabled")
	}

	useReadability := false
	res := resolver.New(resolver.NewDocconvConverter(useReadability), objects)
	engine := extraction.NewEngine(res, cfg.MaxCharBuffer)
	server := NewServer(cfg, engine)

	return &App{Engine: engine, Server: server}, nil
}
