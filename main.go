package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wall-overlay/internal/app"
	"wall-overlay/internal/camera"
	"wall-overlay/internal/config"
	"wall-overlay/internal/motion"
	"wall-overlay/internal/snapshot"
)

var (
	flagDemo         bool
	flagDevice       int
	flagTemplate     string
	flagMotionListen string
	flagSaveDir      string
	flagLogFile      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wall-overlay",
		Short: "Wall Overlay - terminal camera viewfinder with a scaled route overlay",
		Long: `Wall Overlay points a camera at a climbing wall and projects a route
template over the live picture at real-world scale. Tap two points a known
distance apart, enter that distance, and the overlay snaps to size; then pan,
tilt and auto-level it against the wall and save annotated snapshots.

Use --demo for a synthetic wall when no camera is attached.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with a synthetic wall and simulated motion (no camera required)")
	rootCmd.Flags().IntVar(&flagDevice, "device", 0, "V4L2 camera device index")
	rootCmd.Flags().StringVar(&flagTemplate, "template", "", "Route template image to project (PNG)")
	rootCmd.Flags().StringVar(&flagMotionListen, "motion-listen", "", "UDP address for gravity samples, e.g. :9101 (empty disables auto-level hardware)")
	rootCmd.Flags().StringVar(&flagSaveDir, "save-dir", ".", "Directory for annotated snapshots")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file (default: logging off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	feed, src, device := buildSources()

	saver, err := snapshot.NewSaver(flagSaveDir, flagTemplate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	model := app.New(feed, src, saver, flagDemo, device)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFPS(config.TargetFPS),
	)

	// Open the camera with a reference to the tea program before the UI runs.
	if err := model.Start(p); err != nil {
		saver.Close()
		printCameraHint(err)
		return err
	}

	_, err = p.Run()
	return err
}

// buildSources picks the camera feed and motion source for the chosen mode.
func buildSources() (camera.Feed, motion.Source, string) {
	if flagDemo {
		return camera.NewMockFeed(), motion.NewMockSource(), "demo"
	}

	feed := camera.NewSession(flagDevice)
	var src motion.Source
	if flagMotionListen != "" {
		src = motion.NewUDPSource(flagMotionListen)
	}
	return feed, src, fmt.Sprintf("/dev/video%d", flagDevice)
}

func setupLogging() error {
	if flagLogFile == "" {
		logrus.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	return nil
}

func printCameraHint(err error) {
	fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
	switch {
	case errors.Is(err, camera.ErrUnavailable):
		fmt.Fprintln(os.Stderr, "No camera was found at that device index.")
		if ids := camera.ListDevices(); len(ids) > 0 {
			fmt.Fprintf(os.Stderr, "Detected devices: %v\n", ids)
		}
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  ./wall-overlay --device 1")
		fmt.Fprintln(os.Stderr, "  ./wall-overlay --demo    (synthetic wall, no hardware needed)")
	case errors.Is(err, camera.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "The camera device exists but cannot be opened.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  sudo usermod -aG video $USER   (then log in again)")
		fmt.Fprintln(os.Stderr, "  ./wall-overlay --demo")
	default:
		fmt.Fprintln(os.Stderr, "The camera could not start. Use --demo to run without hardware.")
	}
}
