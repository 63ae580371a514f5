package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/df07/go-tiny-raycaster/pkg/config"
	"github.com/df07/go-tiny-raycaster/pkg/core"
	"github.com/df07/go-tiny-raycaster/pkg/output"
	"github.com/df07/go-tiny-raycaster/pkg/preview"
	"github.com/df07/go-tiny-raycaster/pkg/publish"
	"github.com/df07/go-tiny-raycaster/pkg/renderer"
	"github.com/df07/go-tiny-raycaster/pkg/scene"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Getenv, os.Stdout)
	stop()

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}

// run renders one image as configured by the environment and args
func run(ctx context.Context, args []string, getenv func(string) string, stdout io.Writer) error {
	cfg, err := config.FromEnv(getenv)
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	quiet := false
	if err := parseFlags(&cfg, &quiet, args, stdout); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("in configuration: %w", err)
	}

	var logger core.Logger = renderer.NewDefaultLogger()
	if quiet {
		logger = renderer.NopLogger{}
	}

	selectedScene, err := scene.Create(cfg.Scene, cfg.CameraConfig())
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, cfg.RenderOptions(), logger)
	if err != nil {
		return fmt.Errorf("creating raytracer: %w", err)
	}

	fb, _, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	if err := output.Save(cfg.Output, fb); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}

	if cfg.Thumbnail != "" {
		if err := output.SaveThumbnail(cfg.Thumbnail, fb, cfg.ThumbnailWidth); err != nil {
			return fmt.Errorf("saving thumbnail: %w", err)
		}
		logger.Printf("Thumbnail saved as %s\n", cfg.Thumbnail)
	}

	if cfg.S3Bucket != "" {
		client, err := publish.NewS3Client(cfg.S3Region)
		if err != nil {
			return fmt.Errorf("uploading image: %w", err)
		}
		uri, err := publish.NewS3Publisher(client, cfg.S3Bucket).Publish(ctx, cfg.UploadKey(), cfg.Output)
		if err != nil {
			return fmt.Errorf("uploading image: %w", err)
		}
		logger.Printf("Uploaded to %s\n", uri)
	}

	fmt.Fprintf(stdout, "Rendered image saved as %s\n", cfg.Output)

	if cfg.Preview {
		if err := preview.Show(fb); err != nil {
			return fmt.Errorf("showing preview: %w", err)
		}
	}
	return nil
}

// parseFlags overrides cfg with command line flags
func parseFlags(cfg *config.Config, quiet *bool, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to render")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.Float64Var(&cfg.VFovDegrees, "fov", cfg.VFovDegrees, "Vertical field of view in degrees")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output path (.ppm, .ppm.gz, .ppm.zst, .png, .jpg)")
	fs.StringVar(&cfg.Thumbnail, "thumbnail", cfg.Thumbnail, "Optional thumbnail path (.png, .jpg)")
	fs.IntVar(&cfg.ThumbnailWidth, "thumbnail-width", cfg.ThumbnailWidth, "Thumbnail width in pixels")
	fs.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Render tile edge length")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum reflection depth")
	fs.Float64Var(&cfg.Bias, "bias", cfg.Bias, "Offset applied to secondary ray origins")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "Upload the image to this S3 bucket")
	fs.StringVar(&cfg.S3Key, "s3-key", cfg.S3Key, "S3 object key (default: output file name)")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.BoolVar(&cfg.Preview, "preview", cfg.Preview, "Show the image in the terminal when done")
	fs.BoolVar(quiet, "quiet", false, "Only print the final message")

	fs.Usage = func() {
		fmt.Fprintln(stdout, "Tiny Ray Caster")
		fmt.Fprintln(stdout, "Usage: raycaster [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Available scenes:")
		for _, name := range scene.Names() {
			fmt.Fprintf(stdout, "  %s\n", name)
		}
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "Every option can also be set with a %s* environment variable.\n", config.EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("parsing flags: %w", err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("parsing flags: unexpected arguments %v", fs.Args())
	}
	return nil
}
