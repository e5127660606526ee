package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/wilson"
	"github.com/spf13/cobra"
)

// genParams are the settings of one generate run.
type genParams struct {
	width       int
	height      int
	cellSize    int
	seed        int64
	output      string
	profile     string
	wallColor   string
	background  string
	strokeWidth float32
	dump        bool
	ascii       bool
	verify      bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	params := &genParams{}

	cmd := &cobra.Command{
		Use:   "vinom-maze",
		Short: "Generate perfect mazes with Wilson's algorithm",
		Long: `vinom-maze draws a uniformly random perfect maze and saves it as a PNG.
The entrance is at the top of the top-left cell and the exit at the bottom of
the bottom-right cell.

Generate a 100x100 maze into image.png
	vinom-maze

Pick the size, cell size and seed
	vinom-maze -w 40 -h 30 -s 16 --seed 7 -o maze.png

Serve mazes over HTTP
	vinom-maze serve
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyProfile(cmd, params); err != nil {
				return err
			}
			return generate(params, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	cmd.Flags().Bool("help", false, "Help for this command")

	cmd.Flags().IntVarP(&params.width, "width", "w", config.Envs.MazeWidth, "Width of the maze, in cells")
	cmd.Flags().IntVarP(&params.height, "height", "h", config.Envs.MazeHeight, "Height of the maze, in cells")
	cmd.Flags().IntVarP(&params.cellSize, "cell-size", "s", config.Envs.MazeCellSize, "Side of a cell, in pixels")
	cmd.Flags().Int64Var(&params.seed, "seed", 0, "Random seed; 0 picks one from the clock")
	cmd.Flags().StringVarP(&params.output, "output", "o", config.Envs.MazeOutput, "Path of the PNG to write")
	cmd.Flags().StringVar(&params.profile, "profile", "", "YAML file with generation settings; flags override it")
	cmd.Flags().StringVar(&params.wallColor, "wall-color", "", "SVG colour name of the walls (default black)")
	cmd.Flags().StringVar(&params.background, "background", "", "SVG colour name of the background (default transparent)")
	cmd.Flags().Float32Var(&params.strokeWidth, "stroke-width", maze.DefaultStrokeWidth, "Wall thickness, in pixels")
	cmd.Flags().BoolVar(&params.dump, "dump", false, "Log the generator grid after every walk")
	cmd.Flags().BoolVar(&params.ascii, "ascii", false, "Print the maze as text")
	cmd.Flags().BoolVar(&params.verify, "verify", false, "Check the maze is a spanning tree before saving")

	cmd.AddCommand(newServeCmd(), newTokenCmd())
	return cmd
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyProfile fills params from the --profile file for every flag the user did not set.
func applyProfile(cmd *cobra.Command, params *genParams) error {
	if params.profile == "" {
		return nil
	}

	p, err := config.LoadProfile(params.profile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if p.Width != 0 && !flags.Changed("width") {
		params.width = p.Width
	}
	if p.Height != 0 && !flags.Changed("height") {
		params.height = p.Height
	}
	if p.CellSize != 0 && !flags.Changed("cell-size") {
		params.cellSize = p.CellSize
	}
	if p.Seed != 0 && !flags.Changed("seed") {
		params.seed = p.Seed
	}
	if p.Output != "" && !flags.Changed("output") {
		params.output = p.Output
	}
	if p.WallColor != "" && !flags.Changed("wall-color") {
		params.wallColor = p.WallColor
	}
	if p.Background != "" && !flags.Changed("background") {
		params.background = p.Background
	}
	if p.StrokeWidth != 0 && !flags.Changed("stroke-width") {
		params.strokeWidth = p.StrokeWidth
	}
	return nil
}

func generate(params *genParams, stdout, stderr io.Writer) error {
	genLogger, err := logger.New("GENERATE", config.ColorBlue, stderr)
	if err != nil {
		return err
	}
	if err := genLogger.SetLevel(config.Envs.LogLevel); err != nil {
		genLogger.Warn(err.Error())
	}
	if params.dump {
		_ = genLogger.SetLevel("debug")
	}

	if params.width < 1 || params.height < 1 {
		return fmt.Errorf("maze must be at least 1x1, got %dx%d", params.width, params.height)
	}
	if _, _, err := maze.CheckImageSize(params.width, params.height, params.cellSize); err != nil {
		return fmt.Errorf("%dx%d maze at cell size %d: %w", params.width, params.height, params.cellSize, err)
	}

	style, err := maze.StyleFromNames(params.wallColor, params.background, params.strokeWidth)
	if err != nil {
		return err
	}

	seed := params.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var opts []wilson.Option
	if params.dump {
		opts = append(opts, wilson.WithObserver(func(g *wilson.Generator, e wilson.Event) {
			if e == wilson.EventWalked {
				genLogger.Debug(fmt.Sprintf("walk %d reached the maze\n%s", g.Stats().Walks, g))
			}
		}))
	}

	started := time.Now()
	g := wilson.New(params.width, params.height, opts...)
	m := g.Generate(rand.New(rand.NewSource(seed)))
	stats := g.Stats()
	genLogger.Debug(fmt.Sprintf("generated %dx%d with %d walks, %d steps\n%s", params.width, params.height, stats.Walks, stats.Steps, g))

	if params.verify {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("generated maze failed verification: %w", err)
		}
		genLogger.Info("Maze verified as a spanning tree")
	}

	if err := writePNG(params.output, m, params.cellSize, style); err != nil {
		return err
	}

	if params.ascii {
		fmt.Fprint(stdout, m.String())
	}

	genLogger.Info(fmt.Sprintf("Wrote %dx%d maze (seed %d) to %s in %s", params.width, params.height, seed, params.output, time.Since(started).Round(time.Millisecond)))
	return nil
}

// writePNG encodes the image in memory first so a failed render never touches path.
func writePNG(path string, m *maze.Maze, cellSize int, style maze.Style) error {
	var buf bytes.Buffer
	if err := m.EncodePNG(&buf, cellSize, style); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
