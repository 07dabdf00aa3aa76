package client

import (
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/loop/server"
)

// commandsFor turns two consecutive frames of terminal input into session
// commands. Terminals only report key presses, so a direction is pressed when
// it starts being held and released when it stops. Space shoots while
// running and starts a run otherwise; enter only starts.
func commandsFor(prev, cur input.Input, phase game.Phase) []server.Command {
	var cmds []server.Command

	was, now := prev.Directions(), cur.Directions()
	for _, d := range input.AllDirections {
		switch {
		case now.Has(d) && !was.Has(d):
			cmds = append(cmds, server.Command{Type: server.CommandPress, Dir: d})
		case !now.Has(d) && was.Has(d):
			cmds = append(cmds, server.Command{Type: server.CommandRelease, Dir: d})
		}
	}

	space := cur.Space && !prev.Space
	enter := cur.Enter && !prev.Enter
	if phase == game.PhaseRunning {
		if space {
			cmds = append(cmds, server.Command{Type: server.CommandShoot})
		}
	} else if space || enter {
		cmds = append(cmds, server.Command{Type: server.CommandStart})
	}
	return cmds
}
