package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kapu/subtitle-vocab-go/internal/app"
	"github.com/kapu/subtitle-vocab-go/internal/config"
	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"github.com/kapu/subtitle-vocab-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	var query domain.VocabularyQuery
	flag.StringVar(&query.EnglishSentence, "en", "", "English subtitle line")
	flag.StringVar(&query.ChineseSentence, "zh", "", "Chinese translation of the line")
	flag.StringVar(&query.Word, "word", "", "word to memorise")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateExplain(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	container, err := app.BuildExplainer(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble explainer", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	answer, err := container.Explainer.Explain(ctx, query)
	if err != nil {
		logger.Error("Explanation failed", zap.String("word", query.Word), zap.Error(err))
		container.Close()
		logger.Sync()
		os.Exit(1)
	}

	fmt.Println(answer)
}
