package cli

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/config"
	"github.com/LeJamon/goQortald/internal/core/block"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/log"
	"github.com/LeJamon/goQortald/internal/repository/kv"
	"github.com/LeJamon/goQortald/internal/storage/database/backend"
	"go.uber.org/zap"
)

// node bundles what the store-backed commands need.
type node struct {
	config    *config.Config
	params    *chain.Config
	logger    *zap.Logger
	codec     *tx.Codec
	manager   *kv.Manager
	processor *block.Processor

	closeLog func() error
}

// loadParams reads the configuration and builds the logger and the chain
// parameters, without touching storage.
func loadParams() (*config.Config, *chain.Config, *zap.Logger, func() error, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	logger, closeLog, err := log.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if verbose {
		logger = logger.WithOptions(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	}

	params, err := cfg.ChainParams()
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, nil, err
	}
	return cfg, params, logger, closeLog, nil
}

// openNode loads the configuration and opens the configured store.
func openNode(ctx context.Context) (*node, error) {
	cfg, params, logger, closeLog, err := loadParams()
	if err != nil {
		return nil, err
	}

	db, err := backend.Open(ctx, cfg.Storage)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Type, err)
	}
	logger.Debug("Opened storage",
		zap.String("type", cfg.Storage.Type),
		zap.String("path", cfg.Storage.Path),
		zap.Bool("compression", cfg.Storage.Compression))

	manager := kv.NewManager(db, kv.WithLogger(logger))
	processor, err := block.NewProcessor(manager, params, block.WithLogger(logger))
	if err != nil {
		_ = manager.Close()
		_ = closeLog()
		return nil, err
	}

	return &node{
		config:    cfg,
		params:    params,
		logger:    logger,
		codec:     tx.NewCodec(params),
		manager:   manager,
		processor: processor,
		closeLog:  closeLog,
	}, nil
}

func (n *node) Close() error {
	err := n.manager.Close()
	_ = n.logger.Sync()
	if closeErr := n.closeLog(); err == nil {
		err = closeErr
	}
	return err
}
