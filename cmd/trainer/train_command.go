package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flightprice/backend/internal/domain"
	"github.com/flightprice/backend/internal/ml"
)


type trainOptions struct {
	dataPath     string
	modelPath    string
	encodersPath string
	testSize     float64
	seed         int64
}

func newTrainCommand(ctx *commandContext) *cobra.Command {
	var opts trainOptions

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the encoders and the price model from the historical dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("data") {
				opts.dataPath = cfg.Training.DatasetPath
			}
			if !flags.Changed("model") {
				opts.modelPath = cfg.Artifacts.ModelPath
			}
			if !flags.Changed("encoders") {
				opts.encodersPath = cfg.Artifacts.EncodersPath
			}
			if !flags.Changed("test-size") {
				opts.testSize = cfg.Training.TestSize
			}
			if !flags.Changed("seed") {
				opts.seed = cfg.Training.Seed
			}

			log := ctx.logger()
			defer func() { _ = log.Sync() }()

			result, err := runTraining(opts, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Model and encoders saved successfully!")
			fmt.Fprintf(out, "Model:    %s\n", opts.modelPath)
			fmt.Fprintf(out, "Encoders: %s\n", opts.encodersPath)
			fmt.Fprintf(out, "Rows:     %d train / %d held out\n", result.TrainRows, result.TestRows)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dataPath, "data", "", "Dataset CSV path (default from config)")
	cmd.Flags().StringVar(&opts.modelPath, "model", "", "Model artifact output path (default from config)")
	cmd.Flags().StringVar(&opts.encodersPath, "encoders", "", "Encoders artifact output path (default from config)")
	cmd.Flags().Float64Var(&opts.testSize, "test-size", ml.DefaultTestSize, "Held-out fraction of rows")
	cmd.Flags().Int64Var(&opts.seed, "seed", ml.DefaultSeed, "Seed for the train/held-out shuffle")

	return cmd
}

// trainLockPath names the lock guarding outDir. It lives in the system temp
// directory so the output directory only ever holds the two artifacts.
func trainLockPath(outDir string) string {
	if abs, err := filepath.Abs(outDir); err == nil {
		outDir = abs
	}
	sum := sha256.Sum256([]byte(filepath.Clean(outDir)))
	return filepath.Join(os.TempDir(), "flightprice-train-"+hex.EncodeToString(sum[:8])+".lock")
}

// runTraining holds the output directory lock for the whole run so two
// trainers never interleave artifact writes
func runTraining(opts trainOptions, log *zap.Logger) (*ml.TrainResult, error) {
	outDir := filepath.Dir(opts.modelPath)
	for _, dir := range []string{outDir, filepath.Dir(opts.encodersPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	lockPath := trainLockPath(outDir)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another training run holds %s", lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release training lock", zap.Error(err))
		}
	}()

	start := time.Now()
	rows, err := ml.LoadDataset(opts.dataPath)
	if err != nil {
		return nil, err
	}
	log.Info("dataset loaded", zap.String("path", opts.dataPath), zap.Int("rows", len(rows)))

	result, err := ml.Train(rows, ml.TrainOptions{TestSize: opts.testSize, Seed: opts.seed})
	if err != nil {
		return nil, err
	}

	if err := result.Bundle.Save(opts.modelPath, opts.encodersPath); err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.Int("train_rows", result.TrainRows),
		zap.Int("test_rows", result.TestRows),
		zap.Float64("test_size", opts.testSize),
		zap.Int64("seed", opts.seed),
		zap.Duration("elapsed", time.Since(start)),
	}
	for _, field := range domain.CategoricalFields() {
		fields = append(fields, zap.Int("vocab_"+string(field), len(result.Bundle.Vocabulary(field))))
	}
	log.Info("training complete", fields...)

	return result, nil
}
