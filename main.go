package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/page-indicator/internal/config"
	"github.com/iburimskiy/page-indicator/internal/game"
	"github.com/iburimskiy/page-indicator/internal/tui"
)

//nolint:gochecknoglobals // Cobra flag bindings.
var (
	verbose   bool
	circles   int
	colorHex  string
	stroke    float64
	pickColor bool
	sound     bool

	rootCmd = &cobra.Command{
		Use:   "page-indicator",
		Short: "Animated page indicator: a row of circles with a dot that slides between them.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd)
		},
	}

	windowCmd = &cobra.Command{
		Use:   "window",
		Short: "Show the indicator in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd)
		},
	}

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Show the indicator in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Color:   cfg.Color(),
				Circles: cfg.Indicator.Circles,
				Stroke:  terminalStroke(cmd, cfg),
			})
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVarP(&circles, "circles", "n", config.DefaultCircles, "Number of positions")
	rootCmd.PersistentFlags().StringVar(&colorHex, "color", config.DefaultColor, "Indicator color as #RRGGBB")
	rootCmd.PersistentFlags().Float64Var(&stroke, "stroke", config.DefaultStroke, "Outline stroke width (tui: half-block pixels, overrides tui.stroke)")

	for _, c := range []*cobra.Command{rootCmd, windowCmd} {
		c.Flags().BoolVar(&pickColor, "pick-color", false, "Choose the color in a dialog before starting")
		c.Flags().BoolVar(&sound, "sound", false, "Play a chime when the position changes")
	}

	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(tuiCmd)
}

// loadConfig reads the config file and env, then applies flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("circles") {
		cfg.Indicator.Circles = circles
	}
	if flags.Changed("color") {
		cfg.Indicator.Color = colorHex
	}
	if flags.Changed("stroke") {
		cfg.Indicator.Stroke = stroke
	}
	if flags.Changed("sound") {
		cfg.Sound.Enabled = sound
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// terminalStroke picks the tui outline width. indicator.stroke is sized for
// window pixels, so the terminal reads tui.stroke unless --stroke is given.
func terminalStroke(cmd *cobra.Command, cfg config.Config) float64 {
	if cmd.Flags().Changed("stroke") {
		return cfg.Indicator.Stroke
	}
	return cfg.TUI.Stroke
}

func runWindow(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var tint color.Color = cfg.Color()
	if pickColor {
		picked, err := game.PickColor(tint)
		if err != nil {
			logrus.Warnf("color dialog failed, keeping %s: %v", config.FormatColor(tint), err)
		}
		tint = picked
	}

	opts := game.Options{
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Color:   tint,
		Circles: cfg.Indicator.Circles,
		Stroke:  cfg.Indicator.Stroke,
	}

	var chimeErr error
	if cfg.Sound.Enabled {
		chime, err := game.NewChime(config.SoundSampleRate, cfg.Sound.Frequency)
		if err != nil {
			chimeErr = err
			logrus.Warnf("sound disabled: %v", err)
		}
		opts.Chime = chime
	}

	g := game.New(opts)
	if chimeErr != nil {
		g.SetError(chimeErr)
	}
	logrus.WithFields(logrus.Fields{
		"circles": g.Widget().Circles(),
		"color":   config.FormatColor(tint),
	}).Debug("starting window")

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("Page indicator - %d positions", g.Widget().Circles()))
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
