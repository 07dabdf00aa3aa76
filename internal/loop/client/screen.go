package client

import (
	"fmt"
	"time"

	"github.com/tomz197/swarm/internal/draw"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/config"
	"github.com/tomz197/swarm/internal/object"
)

// projectileRadius is the drawn half-diagonal of a projectile diamond.
const projectileRadius = 8.0

// drawFrame draws the current frame.
func (c *Client) drawFrame(snapshot *game.Snapshot) error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		c.drawWorld(snapshot)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawWorld draws every entity of the snapshot onto the canvas.
func (c *Client) drawWorld(snapshot *game.Snapshot) {
	cv := c.canvas

	for _, e := range snapshot.Enemies {
		x, y := e.Center()
		cv.FillCircle(x, y, object.EnemyHitbox)
	}

	for _, p := range snapshot.Projectiles {
		x, y := p.Center()
		pts := cv.BorrowPoints(4)
		pts[0] = draw.Point{X: x, Y: y - projectileRadius}
		pts[1] = draw.Point{X: x + projectileRadius, Y: y}
		pts[2] = draw.Point{X: x, Y: y + projectileRadius}
		pts[3] = draw.Point{X: x - projectileRadius, Y: y}
		cv.DrawPolygon(pts, true)
	}

	ch := snapshot.Character
	cx, cy := ch.Center()
	body := 2 * object.CharacterHitbox
	cv.FillRect(cx-body/2, cy-body/2, body, body)
	cv.StrokeRect(ch.X, ch.Y, object.CharacterSize, object.CharacterSize)

	for _, p := range c.state.particles {
		if p.Faded() && time.Now().UnixMilli()/50%2 == 0 {
			continue
		}
		cv.SetFloat(p.X, p.Y)
	}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *game.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
		if snapshot.LevelUp {
			c.drawLevelUpBanner(centerX, snapshot)
		}
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawGameOverScreen(centerX, centerY, snapshot)
	}
}

// writeOverlay writes text over the canvas and marks the cells so the canvas
// repaints them once the text is gone.
func (c *Client) writeOverlay(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

func (c *Client) writeOverlayCentered(centerX, row int, s string) {
	c.writeOverlay(centerX-len([]rune(s))/2, row, s)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

var titleArt = []string{
	` ___ _      __ _   ___ __  __ `,
	`/ __| \    / //_\ | _ \  \/  |`,
	`\__ \\ \/\/ // _ \|   / |\/| |`,
	`|___/ \_/\_//_/ \_\_|_\_|  |_|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawArt draws centered ASCII art starting at row top and returns the row below it.
func (c *Client) drawArt(art []string, centerX, top int) int {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(centerX-width/2, top+i, line)
	}
	return top + len(art)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	cw := c.chunkWriter
	row := c.drawArt(titleArt, centerX, centerY-8)

	cw.WriteCentered(centerX, row+1, "~ Survive the swarm ~")

	controlsY := row + 3
	cw.WriteCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"WASD / Arrows . . .  Move",
		"SPACE  . . . . . . . Shoot",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+1+i, line)
	}
	cw.WriteCentered(centerX, controlsY+len(controlLines)+2, "You fire in all four directions automatically.")

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, controlsY+len(controlLines)+4, ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *game.Snapshot) {
	c.writeOverlay(2, 1, fmt.Sprintf("Score: %-8d", snapshot.Score))

	timeText := "Time: " + formatElapsed(snapshot.Elapsed)
	c.writeOverlayCentered(termWidth/2, 1, timeText)

	levelText := fmt.Sprintf("Level: %-3d", snapshot.Level)
	c.writeOverlay(termWidth-len(levelText)-1, 1, levelText)

	fireText := fmt.Sprintf("Fire rate: +%d%%  ", snapshot.FireRatePercent)
	c.writeOverlay(2, termHeight, fireText)

	enemiesText := fmt.Sprintf("Enemies: %-5d", len(snapshot.Enemies))
	c.writeOverlay(termWidth-len(enemiesText)-1, termHeight, enemiesText)
}

// drawLevelUpBanner shows the new level while the notice is active.
func (c *Client) drawLevelUpBanner(centerX int, snapshot *game.Snapshot) {
	row := 4
	c.chunkWriter.WriteString(draw.ColorYellow)
	c.writeOverlayCentered(centerX, row, fmt.Sprintf("LEVEL %d", snapshot.Level))
	c.chunkWriter.WriteString(draw.ColorReset)
	c.writeOverlayCentered(centerX, row+1, fmt.Sprintf("Fire rate +%d%%", snapshot.FireRatePercent))
}

// drawGameOverScreen draws the final score and the restart prompt over the frozen arena.
func (c *Client) drawGameOverScreen(centerX, centerY int, snapshot *game.Snapshot) {
	row := centerY - 6
	for i, line := range gameOverArt {
		c.writeOverlayCentered(centerX, row+i, line)
	}
	row += len(gameOverArt) + 1

	c.writeOverlayCentered(centerX, row, fmt.Sprintf("Score: %d", snapshot.Score))
	c.writeOverlayCentered(centerX, row+1, "Survived: "+formatElapsed(snapshot.Elapsed))
	c.writeOverlayCentered(centerX, row+2, fmt.Sprintf("Level reached: %d", snapshot.Level))

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeOverlayCentered(centerX, row+4, ">>  Press SPACE to Restart  <<")
	} else {
		c.canvas.MarkTextDirty(1, row+4, c.canvas.TerminalWidth())
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}

// formatElapsed renders whole seconds as m:ss.
func formatElapsed(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
