package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tendant/bucket-thumbnailer/internal/converters"
	"github.com/tendant/bucket-thumbnailer/internal/img"
	"github.com/tendant/bucket-thumbnailer/internal/media"
)

var (
	convertInput   string
	convertOutput  string
	convertTimeout time.Duration
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Generate a thumbnail from a local file with the production generators",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Input file path (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (default: thumbnail-<name> next to the input)")
	convertCmd.Flags().DurationVar(&convertTimeout, "timeout", 30*time.Second, "Conversion timeout")
	_ = convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(convertInput); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	kind := media.Classify(convertInput)
	if kind == media.KindUnsupported {
		return fmt.Errorf("unsupported file type %q (supported: %v)", media.Extension(convertInput), media.SupportedExtensions())
	}

	output := convertOutput
	if output == "" {
		output = filepath.Join(filepath.Dir(convertInput), media.DerivativeFileName(filepath.ToSlash(convertInput), kind))
	}

	generator, err := img.GetGenerator(kind, converters.NewFFmpegConverter(cfg.FFmpegPath))
	if err != nil {
		return err
	}
	logger.Info("generating thumbnail", "input", convertInput, "generator", generator.Name(), "output", output)

	ctx, cancel := context.WithTimeout(cmd.Context(), convertTimeout)
	defer cancel()

	start := time.Now()
	out, err := generator.Generate(ctx, convertInput, output)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	info, err := os.Stat(out.Path)
	if err != nil {
		return fmt.Errorf("read output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "output: %s\nsize:   %dx%d (%d bytes)\ntime:   %v\n",
		out.Path, out.Width, out.Height, info.Size(), time.Since(start).Round(time.Millisecond))
	return nil
}
