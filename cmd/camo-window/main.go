package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/camo/config"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags
	var width, height int

	root := &cobra.Command{
		Use:          "camo-window",
		Short:        "Animated camouflage background in a desktop window",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Resolve(cmd.Flags())
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if flags.Debug {
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			defer logger.Sync()

			g, err := newGame(cfg, width, height, logger)
			if err != nil {
				return err
			}
			defer g.Close()

			ebiten.SetWindowSize(width, height)
			ebiten.SetWindowTitle("camo")
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			return ebiten.RunGame(g)
		},
	}
	flags.Register(root.Flags())
	root.Flags().IntVar(&width, "width", defaultWidth, "Initial window width in pixels")
	root.Flags().IntVar(&height, "height", defaultHeight, "Initial window height in pixels")
	return root
}
