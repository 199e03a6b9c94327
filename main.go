package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/pkg/types"
	"github.com/ZacxDev/fogloop/pkg/videoprocessor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "fogloop [image ...]",
		Short: "Render a looping crossfade video from still images",
		Long: `fogloop crops a set of still images to a common size and writes a looping
video that crossfades from each image to the next, and from the last back to the first.

With no arguments it reads fog_01.png … fog_10.png from the working directory and
writes fog_loop_10images.mp4 at 2 fps, 120 seconds long.

Every setting can also be given as a FOGLOOP_* environment variable
(FOGLOOP_INPUT_DIR, FOGLOOP_PATTERN, FOGLOOP_COUNT, FOGLOOP_FPS, FOGLOOP_DURATION,
FOGLOOP_OUTPUT, FOGLOOP_FORMAT, FOGLOOP_VERBOSE). Flags win over the environment.

Examples:
  # Render the default fog loop
  fogloop

  # Render an explicit list of images to an AVI without ffmpeg
  fogloop -o loop.avi a.png b.png c.png`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := videoprocessor.DefaultLoopOptions()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("input-dir") {
				opts.InputDir, _ = flags.GetString("input-dir")
			}
			if flags.Changed("pattern") {
				opts.Pattern, _ = flags.GetString("pattern")
			}
			if flags.Changed("count") {
				opts.Count, _ = flags.GetInt("count")
			}
			if flags.Changed("fps") {
				opts.FPS, _ = flags.GetFloat64("fps")
			}
			if flags.Changed("duration") {
				opts.TotalDuration, _ = flags.GetFloat64("duration")
			}
			if flags.Changed("output") {
				opts.OutputPath, _ = flags.GetString("output")
			}
			if flags.Changed("format") {
				format, _ := flags.GetString("format")
				opts.Format = types.ContainerFormat(strings.ToLower(format))
			}
			if flags.Changed("verbose") {
				opts.Verbose, _ = flags.GetBool("verbose")
			}
			if len(args) > 0 {
				opts.InputPaths = args
			}

			configureLogging(opts.Verbose)

			result, err := videoprocessor.RenderLoop(opts)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"frames":     result.FrameCount,
				"dimensions": fmt.Sprintf("%dx%d", result.Width, result.Height),
				"duration":   result.Duration,
			}).Debug("Render complete")

			fmt.Printf("Video saved to %s\n", result.OutputPath)
			return nil
		},
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect <video>",
		Short: "Show duration, size, codec and frame count of a video",
		Long: `Probe a video with ffprobe and print its metadata.

Example:
  fogloop inspect fog_loop_10images.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := videoprocessor.GetVideoMetadata(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("File:       %s\n", args[0])
			fmt.Printf("Codec:      %s\n", meta.Codec)
			fmt.Printf("Resolution: %dx%d\n", meta.Width, meta.Height)
			fmt.Printf("Frame rate: %.2f fps\n", meta.FrameRate)
			fmt.Printf("Frames:     %d\n", meta.FrameCount)
			fmt.Printf("Duration:   %.2fs\n", meta.Duration)
			return nil
		},
	}

	formatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(formatSupportedFormats())
		},
	}
)

func formatSupportedFormats() string {
	var sb strings.Builder
	for _, f := range videoprocessor.GetSupportedFormats() {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", f.Name, f.Extension, f.Description))
	}
	return sb.String()
}

func configureLogging(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func init() {
	rootCmd.Flags().StringP("input-dir", "i", config.DefaultInputDir, "Directory holding the numbered images")
	rootCmd.Flags().StringP("pattern", "p", config.DefaultPattern, "File name pattern taking the 1-based image number")
	rootCmd.Flags().IntP("count", "n", config.DefaultImageCount, "Number of numbered images")
	rootCmd.Flags().Float64P("fps", "f", config.DefaultFPS, "Output frames per second")
	rootCmd.Flags().Float64P("duration", "d", config.DefaultTotalDuration, "Total loop duration in seconds")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutputPath, "Output video path")
	rootCmd.Flags().String("format", "",
		fmt.Sprintf("Output format, inferred from the output extension when empty (%s)", supportedFormatNames()))
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(formatsCmd)
}

func supportedFormatNames() string {
	formats := videoprocessor.GetSupportedFormats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f.Name))
	}
	return strings.Join(names, ", ")
}

func main() {
	configureLogging(false)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
