// Command nesbox is the NES emulator's host: it loads a cartridge,
// drives the console's run loop inside an ebiten window, and maps
// keyboard input to joypad 1.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bdwalton/nesbox/joypad"
	"github.com/bdwalton/nesbox/nes"
	"github.com/bdwalton/nesbox/video"
	"github.com/davecgh/go-spew/spew"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagScale     int
	flagTrace     bool
	flagTraceOut  string
	flagStartPC   uint16
	flagDumpState bool
)

func main() {
	root := &cobra.Command{
		Use:   "nesbox",
		Short: "A 2A03/2C02 NES emulator core.",
	}

	runCmd := &cobra.Command{
		Use:   "run <rom-file>",
		Short: "Run a cartridge in a window.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRom,
	}
	runCmd.Flags().IntVar(&flagScale, "scale", 2, "Window scale factor.")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "Emit a nestest-format trace line per instruction.")
	runCmd.Flags().StringVar(&flagTraceOut, "trace-out", "", "File to write trace lines to (default stdout).")
	runCmd.Flags().Uint16Var(&flagStartPC, "start-pc", 0, "Override the reset-vector PC (0 = use the vector).")
	runCmd.Flags().BoolVar(&flagDumpState, "dump-state", false, "Dump full machine state via go-spew before any startup panic.")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runRom(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("nesbox: opening ROM: %w", err)
	}
	defer f.Close()

	console, err := nes.Load(f, false)
	if err != nil {
		return fmt.Errorf("nesbox: loading cartridge: %w", err)
	}

	if flagStartPC != 0 {
		console.SetPC(flagStartPC)
	}

	if flagTrace {
		out := os.Stdout
		if flagTraceOut != "" {
			tf, err := os.Create(flagTraceOut)
			if err != nil {
				return fmt.Errorf("nesbox: opening trace output: %w", err)
			}
			defer tf.Close()
			out = tf
		}
		console.Trace = func(line string) { fmt.Fprintln(out, line) }
	}

	if flagDumpState {
		defer func() {
			if r := recover(); r != nil {
				spew.Dump(console)
				panic(r)
			}
		}()
	}

	game := newGame(console)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- console.Run(ctx) }()

	ebiten.SetWindowSize(video.Width*flagScale, video.Height*flagScale)
	ebiten.SetWindowTitle("nesbox")
	if err := ebiten.RunGame(game); err != nil {
		cancel()
		return err
	}

	cancel()
	<-done
	return nil
}

// keymap maps a host key to the joypad button it drives.
var keymap = map[ebiten.Key]uint8{
	ebiten.KeyA:     joypad.ButtonA,
	ebiten.KeyB:     joypad.ButtonB,
	ebiten.KeySpace: joypad.ButtonSelect,
	ebiten.KeyEnter: joypad.ButtonStart,
	ebiten.KeyUp:    joypad.ButtonUp,
	ebiten.KeyDown:  joypad.ButtonDown,
	ebiten.KeyLeft:  joypad.ButtonLeft,
	ebiten.KeyRight: joypad.ButtonRight,
}

// game implements ebiten.Game, presenting the console's latest frame
// and polling the keyboard for joypad 1 every Update.
type game struct {
	console *nes.Console
	img     *ebiten.Image
}

func newGame(c *nes.Console) *game {
	return &game{console: c, img: ebiten.NewImage(video.Width, video.Height)}
}

func (g *game) Update() error {
	var mask uint8
	for key, button := range keymap {
		if ebiten.IsKeyPressed(key) {
			mask |= button
		}
	}
	g.console.SetButtons(0, mask)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.console.Frame()
	pix := make([]byte, video.Width*video.Height*4)
	for i := 0; i < video.Width*video.Height; i++ {
		pix[i*4] = frame.Pix[i*3]
		pix[i*4+1] = frame.Pix[i*3+1]
		pix[i*4+2] = frame.Pix[i*3+2]
		pix[i*4+3] = 0xFF
	}
	g.img.WritePixels(pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return video.Width, video.Height
}
