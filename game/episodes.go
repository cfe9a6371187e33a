package game

import "log/slog"

// RunEpisodes plays up to episodes episodes (0 = unlimited), calling tick
// once per simulation step. An episode ends on extinction or after maxTicks
// ticks (0 = no cap) and is then recorded and restarted. When anim stops
// asking for frames the running episode is abandoned unrecorded and
// RunEpisodes returns. A tick error ends the run and is returned.
func (g *Game) RunEpisodes(anim Animator, episodes, maxTicks int, tick func() error) error {
	for ep := 0; episodes == 0 || ep < episodes; ep++ {
		for g.ContinueSimulation(anim) {
			if err := tick(); err != nil {
				return err
			}
			if maxTicks > 0 && g.tick >= maxTicks {
				slog.Info("max ticks reached", "episode", g.Episode(), "tick", g.tick)
				break
			}
		}

		if anim != nil && !anim.ContinueAnimation() {
			slog.Info("episode aborted", "episode", g.Episode(), "tick", g.tick)
			return nil
		}
		g.EndEpisode()
		g.Restart()
	}
	return nil
}
