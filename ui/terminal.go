package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"

	"snake-sprites/game"
	"snake-sprites/game/types"
)

const (
	frameInterval = 33 * time.Millisecond
	statusRows    = 1 // details line above the board
	cellColumns   = 2 // terminal cells are roughly twice as tall as wide
)

var arrowCommands = map[tcell.Key]game.Command{
	tcell.KeyUp:    game.CommandUp,
	tcell.KeyLeft:  game.CommandLeft,
	tcell.KeyDown:  game.CommandDown,
	tcell.KeyRight: game.CommandRight,
}

// terminalGrid returns the grid that fits a cols x rows terminal.
func terminalGrid(cols, rows int) (types.Grid, error) {
	return types.NewGrid(cols/cellColumns, rows-statusRows)
}

// terminalCell maps a grid cell to its left screen column and row.
func terminalCell(p types.Point) (int, int) {
	return (p.X - 1) * cellColumns, p.Y - 1 + statusRows
}

// spriteStyle dims the sprite as its lifetime runs out.
func spriteStyle(opacity float64) tcell.Style {
	intensity := int32(55 + 200*opacity)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(intensity, 0, 0))
}

// RunTerminal hosts the game in the terminal until Escape or Ctrl-C is
// pressed or ctx is done.
func RunTerminal(ctx context.Context, clock *game.Clock, cfg game.Config, sound *Sound) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("problem creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init problem: %w", err)
	}
	defer screen.Fini()

	resize := func() {
		cols, rows := screen.Size()
		grid, err := terminalGrid(cols, rows)
		if err != nil {
			glog.Warningf("terminal too small: %v", err)
			return
		}
		if err := clock.Resize(grid.Width, grid.Height); err != nil {
			glog.Warningf("terminal resize: %v", err)
		}
	}
	resize()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	snap := clock.Snapshot()
	scores := scoreTracker{last: snap.Score}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				cmd, ok := arrowCommands[ev.Key()]
				if !ok {
					if ev.Key() != tcell.KeyRune {
						continue
					}
					if cmd, err = game.MapKey(ev.Rune()); err != nil {
						glog.V(2).Infof("ignored key: %v", err)
						continue
					}
				}
				if err := clock.Apply(cmd); err != nil {
					glog.Warningf("command %v rejected: %v", cmd, err)
				}
			case *tcell.EventResize:
				screen.Sync()
				resize()
			}

		case latest := <-clock.Snapshots():
			snap = latest
			if scores.Update(snap.Score) {
				sound.Chirp()
			}

		case <-ticker.C:
			drawTerminal(screen, snap, clock.Now(), cfg.ShowGameDetails)
		}
	}
}

func drawTerminal(s tcell.Screen, snap game.Snapshot, now time.Time, showDetails bool) {
	s.Clear()

	if showDetails {
		drawText(s, 0, 0, strings.Join(DetailsLines(snap), "   "), tcell.StyleDefault.Bold(true))
	}

	for _, sprite := range snap.Sprites {
		drawCell(s, snap.Grid, sprite.Position, '●', spriteStyle(sprite.Opacity(now)))
	}

	body := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, seg := range snap.Segments {
		for _, p := range seg.Cells() {
			drawCell(s, snap.Grid, p, '█', body)
		}
	}
	drawCell(s, snap.Grid, snap.Head().Head, '█', tcell.StyleDefault.Foreground(tcell.ColorYellow))

	s.Show()
}

func drawCell(s tcell.Screen, grid types.Grid, p types.Point, r rune, style tcell.Style) {
	if grid.IsOutOfBounds(p) {
		return
	}
	col, row := terminalCell(p)
	for i := 0; i < cellColumns; i++ {
		s.SetContent(col+i, row, r, nil, style)
	}
}

func drawText(s tcell.Screen, col, row int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(col, row, r, nil, style)
		col++
	}
}
