package pipeline

import (
	"github.com/nguyentantai21042004/transcribe-web/internal/audio"
	"github.com/nguyentantai21042004/transcribe-web/internal/config"
	"github.com/nguyentantai21042004/transcribe-web/internal/logger"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcribe"
)

type implPipeline struct {
	cfg     *config.Config
	creds   config.Credentials
	audio   audio.Processor
	factory transcribe.Factory
	logger  logger.Logger
}

// New creates a Pipeline. Credentials are passed in explicitly rather
// than read from the environment inside the pipeline.
func New(cfg *config.Config, creds config.Credentials, ap audio.Processor, factory transcribe.Factory, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:     cfg,
		creds:   creds,
		audio:   ap,
		factory: factory,
		logger:  log,
	}
}
