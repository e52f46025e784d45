package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	settingsPath   string
	outputDir      string
	captionFormat  string
	workers        int
	timeoutSeconds int
	noDownload     bool
	overwrite      bool
	debugMode      bool
)

var rootCmd = &cobra.Command{
	Use:   "feed-scraper [input-file]",
	Short: "Extract posts and media from a saved feed page",
	Long: `Reads a locally saved social media feed page, writes one folder per post
with its timestamp, captions and media URLs, and downloads the images and
videos into the post folders.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := "input.html"
		if len(args) > 0 {
			inputFile = args[0]
		}

		if debugMode {
			SetDebugMode(true)
		}

		// Build config overrides from explicitly set flags
		overrides := &ConfigOverrides{
			NoDownload: noDownload,
			Overwrite:  overwrite,
		}
		if settingsPath != "" {
			overrides.SettingsPath = &settingsPath
		} else if err := ensureConfigExists(); err != nil {
			log.Printf("Warning: %v", err)
		}
		if outputDir != "" {
			overrides.OutputDirectory = &outputDir
		}
		if captionFormat != "" {
			overrides.CaptionFormat = &captionFormat
		}
		if cmd.Flags().Changed("workers") {
			overrides.Workers = &workers
		}
		if cmd.Flags().Changed("timeout") {
			overrides.TimeoutSeconds = &timeoutSeconds
		}

		settings, err := LoadSettings(overrides)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log.Printf("Extracting %s into %s", inputFile, settings.OutputDirectory)
		summary, err := Run(ctx, inputFile, settings)
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}

		log.Printf("Posts: %d, captions: %d, images: %d, videos: %d, failed elements: %d",
			summary.Posts, summary.Captions, summary.Images, summary.Videos, summary.FailedElements)
		if settings.Download.Enabled {
			log.Printf("Downloads: %d stored, %d skipped, %d failed",
				summary.DownloadsOK, summary.DownloadsSkipped, summary.DownloadsFailed)
		}
		log.Println("Operation complete")
	},
}

func init() {
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to settings YAML file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides settings)")
	rootCmd.Flags().StringVar(&captionFormat, "caption-format", "", "Caption format: text or markdown")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "Number of concurrent downloads")
	rootCmd.Flags().IntVar(&timeoutSeconds, "timeout", 60, "Per-download timeout in seconds")
	rootCmd.Flags().BoolVar(&noDownload, "no-download", false, "Record media URLs without downloading them")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite media files that already exist")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
