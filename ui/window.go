package ui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/glog"

	"snake-sprites/game"
	"snake-sprites/game/types"
)

// RunWindow hosts the game in a resizable raylib window until the window is
// closed (Escape or the close button) or ctx is done.
func RunWindow(ctx context.Context, clock *game.Clock, cfg game.Config, sound *Sound) error {
	snap := clock.Snapshot()

	rl.InitWindow(int32(snap.Grid.Width*cfg.PixelSize), int32(snap.Grid.Height*cfg.PixelSize), "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := NewRenderer(cfg.ShowGameDetails)
	scores := scoreTracker{last: snap.Score}

	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		case latest := <-clock.Snapshots():
			snap = latest
			if scores.Update(snap.Score) {
				sound.Chirp()
			}
		default:
		}

		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			cmd, err := game.MapKey(rune(ch))
			if err != nil {
				glog.V(2).Infof("ignored key: %v", err)
				continue
			}
			if err := clock.Apply(cmd); err != nil {
				glog.Warningf("command %v rejected: %v", cmd, err)
			}
		}

		if rl.IsWindowResized() {
			grid, err := types.GridForViewport(rl.GetScreenWidth(), rl.GetScreenHeight(), cfg.PixelSize)
			if err != nil {
				glog.Warningf("window resize: %v", err)
			} else if err := clock.Resize(grid.Width, grid.Height); err != nil {
				glog.Warningf("window resize: %v", err)
			}
		}

		renderer.Draw(snap, clock.Now())
	}
	return nil
}
