package tui

import (
	"fmt"

	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

// drawWorld renders a tick result into the screen buffer, scaling the
// simulation coordinate space down to the terminal cell grid. Terminal
// cells are roughly twice as tall as wide, which the vertical scale
// absorbs for free since the virtual space is wider than tall.
func drawWorld(s *core.Screen, res sim.TickResult, cfg *config.Game) {
	s.Clear()

	sx := float64(s.Width()) / cfg.Screen.Width
	sy := float64(s.Height()) / cfg.Screen.Height

	for _, p := range res.Pipes {
		drawPipe(s, p, cfg, sx, sy)
	}
	drawBird(s, res.Bird, cfg, sx, sy)

	// Bottom edge doubles as the ground line.
	s.DrawHLine(0, s.Height()-1, s.Width(), '━', core.ColorGray)
}

func drawPipe(s *core.Screen, p sim.Pipe, cfg *config.Game, sx, sy float64) {
	left := int(p.X * sx)
	right := int((p.X + cfg.Pipes.Width) * sx)
	if right <= left {
		right = left + 1
	}

	gapTop := int((p.GapCenterY - cfg.Pipes.GapHeight/2) * sy)
	gapBottom := int((p.GapCenterY + cfg.Pipes.GapHeight/2) * sy)

	for x := left; x < right; x++ {
		for y := 0; y < gapTop; y++ {
			s.SetCell(x, y, core.Cell{Rune: '█', Color: core.ColorGreen})
		}
		for y := gapBottom; y < s.Height(); y++ {
			s.SetCell(x, y, core.Cell{Rune: '█', Color: core.ColorGreen})
		}
	}
}

func drawBird(s *core.Screen, b sim.Bird, cfg *config.Game, sx, sy float64) {
	x := int((b.X + cfg.Bird.Width/2) * sx)
	y := int((b.Y + cfg.Bird.Height/2) * sy)

	glyph := '>'
	if b.VelY < 0 {
		glyph = '^'
	}
	s.SetCell(x, y, core.Cell{Rune: glyph, Color: core.ColorYellow})
}

// drawHUD overlays the score line and, on termination, the game over box.
func drawHUD(s *core.Screen, res sim.TickResult, seed uint32, best int) {
	s.DrawTextColored(2, 0, fmt.Sprintf("Score: %d", res.Score), core.ColorWhite)
	s.DrawTextColored(2, 1, fmt.Sprintf("Seed: %d", seed), core.ColorGray)
	if best > 0 {
		s.DrawTextColored(2, 2, fmt.Sprintf("Best: %d", best), core.ColorGray)
	}

	if !res.Terminated {
		return
	}

	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", res.Score),
		"r restart / q quit",
	}
	boxW := 0
	for _, l := range lines {
		if len(l) > boxW {
			boxW = len(l)
		}
	}
	boxW += 4
	boxH := len(lines) + 2

	box := core.NewRect((s.Width()-boxW)/2, (s.Height()-boxH)/2, boxW, boxH)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorOrange
		}
		s.DrawTextColored(box.X+(boxW-len(l))/2, box.Y+1+i, l, color)
	}
}
