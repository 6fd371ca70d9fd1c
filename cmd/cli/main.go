package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/media-fetch-go/internal/catalog"
	"github.com/yourusername/media-fetch-go/internal/domain"
	"github.com/yourusername/media-fetch-go/internal/infrastructure"
	"github.com/yourusername/media-fetch-go/pkg/logger"
)

var (
	binary  string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "media-fetch",
		Short: "Media-Fetch CLI - Inspect and download media without the bot",
		Long:  `A command-line interface for resolving media formats and downloading files through yt-dlp, bypassing the conversational transport.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&binary, "binary", "yt-dlp", "Path to the yt-dlp binary")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

func newEngine() *infrastructure.YTDLPEngine {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "console", OutputPath: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return infrastructure.NewYTDLPEngine(&domain.EngineConfig{Binary: binary}, log)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a URL and print the selectable formats",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine()

		info, err := engine.Resolve(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, infrastructure.FailureMessage(err))
			os.Exit(1)
		}

		fmt.Printf("Title:    %s\n", info.Title)
		fmt.Printf("Duration: %s\n", info.DurationString())
		fmt.Printf("Uploader: %s\n\n", info.Uploader)

		built := catalog.Build(info.Formats)
		if built.Empty() {
			fmt.Println("No selectable formats; audio extraction presets apply.")
			for _, preset := range domain.AudioPresets() {
				fmt.Printf("  %s\n", preset.Label())
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tFORMAT\tQUALITY\tEXT\tSIZE(MB)")
		for _, entry := range built.Video {
			fmt.Fprintf(w, "video\t%s\t%s\t%s\t%s\n", entry.ID, entry.Quality, entry.Ext, entry.Size)
		}
		for _, entry := range built.Audio {
			fmt.Fprintf(w, "audio\t%s\t%s\t%s\t%s\n", entry.ID, entry.Quality, entry.Ext, entry.Size)
		}
		w.Flush()
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download a URL into the current directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine()

		format, _ := cmd.Flags().GetString("format")
		audioCodec, _ := cmd.Flags().GetString("audio")
		quality, _ := cmd.Flags().GetString("quality")
		output, _ := cmd.Flags().GetString("output")

		opts := domain.DownloadOptions{
			OutputTemplate: output,
			Format:         format,
		}
		if audioCodec != "" {
			if opts.Format == "" {
				opts.Format = "bestaudio/best"
			}
			opts.Audio = &domain.AudioSpec{Codec: audioCodec, Quality: quality}
		}

		if err := engine.Download(cmd.Context(), args[0], opts); err != nil {
			fmt.Fprintln(os.Stderr, infrastructure.FailureMessage(err))
			os.Exit(1)
		}
		fmt.Println("Download complete")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("media-fetch 1.0.0")
	},
}

func init() {
	fetchCmd.Flags().StringP("format", "f", "", "Format selector passed to yt-dlp (e.g. 137, best)")
	fetchCmd.Flags().StringP("audio", "a", "", "Extract audio to the given codec (mp3, m4a, opus)")
	fetchCmd.Flags().StringP("quality", "q", "", "Audio quality in kbps, with --audio")
	fetchCmd.Flags().StringP("output", "o", "%(title)s.%(ext)s", "Output template")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
