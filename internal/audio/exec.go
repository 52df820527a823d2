package audio

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/logging"
	"github.com/abhisek/storybook/internal/slides"
)

// candidates are tried in order when no player command is configured.
var candidates = []string{"afplay", "paplay", "aplay", "ffplay"}

// playerArgs adds the flags some players need to run headless.
func playerArgs(player, file string) []string {
	if filepath.Base(player) == "ffplay" {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}
	}
	return []string{file}
}

// ExecPlayer runs an external command per sound. At most one narration
// process exists at a time.
type ExecPlayer struct {
	player string
	dir    string
	logger *zap.Logger

	mu        sync.Mutex
	narration *exec.Cmd
	effects   map[*exec.Cmd]struct{}
	wg        sync.WaitGroup

	fxOnce sync.Once
	fxDir  string
	flip   string
	bell   string
}

// NewExecPlayer returns a player for the narration files in dir. When
// player is empty the first available known player is used. It returns
// Nop when none can be found.
func NewExecPlayer(dir, player string, logger *zap.Logger) Player {
	logger = logging.OrNop(logger)
	if player == "" {
		for _, c := range candidates {
			if p, err := exec.LookPath(c); err == nil {
				player = p
				break
			}
		}
	}
	if player == "" {
		logger.Debug("no audio player found")
		return Nop{}
	}
	return &ExecPlayer{player: player, dir: dir, logger: logger, effects: make(map[*exec.Cmd]struct{})}
}

// NarrationPath returns the narration file of slide index under dir.
func NarrationPath(dir string, index int) string {
	return filepath.Join(dir, "slide"+slides.Number(index)+".mp3")
}

func (p *ExecPlayer) Narrate(index int) error {
	if p.dir == "" {
		return ErrUnavailable
	}
	file := NarrationPath(p.dir, index)
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	p.StopNarration()

	cmd := exec.Command(p.player, playerArgs(p.player, file)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	p.mu.Lock()
	p.narration = cmd
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_ = cmd.Wait()
		p.mu.Lock()
		if p.narration == cmd {
			p.narration = nil
		}
		p.mu.Unlock()
	}()
	return nil
}

func (p *ExecPlayer) StopNarration() {
	p.mu.Lock()
	cmd := p.narration
	p.narration = nil
	p.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

func (p *ExecPlayer) Narrating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.narration != nil
}

func (p *ExecPlayer) PageTurn() {
	p.prepareEffects()
	p.oneShot(p.flip)
}

// Celebrate plays win.mp3 from the audio dir, or a synthesized chime.
func (p *ExecPlayer) Celebrate() {
	if p.dir != "" {
		win := filepath.Join(p.dir, "win.mp3")
		if _, err := os.Stat(win); err == nil {
			p.oneShot(win)
			return
		}
	}
	p.prepareEffects()
	p.oneShot(p.bell)
}

func (p *ExecPlayer) oneShot(file string) {
	if file == "" {
		return
	}
	cmd := exec.Command(p.player, playerArgs(p.player, file)...)
	if err := cmd.Start(); err != nil {
		p.logger.Debug("sound effect failed", zap.String("file", file), zap.Error(err))
		return
	}
	p.mu.Lock()
	p.effects[cmd] = struct{}{}
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_ = cmd.Wait()
		p.mu.Lock()
		delete(p.effects, cmd)
		p.mu.Unlock()
	}()
}

// prepareEffects writes the synthesized effects to a temp dir once.
func (p *ExecPlayer) prepareEffects() {
	p.fxOnce.Do(func() {
		dir, err := os.MkdirTemp("", "storybook-fx-")
		if err != nil {
			p.logger.Debug("effects dir", zap.Error(err))
			return
		}
		p.fxDir = dir
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		p.flip = p.writeEffect("flip.wav", pinkNoise(rng))
		p.bell = p.writeEffect("chime.wav", chime())
	})
}

func (p *ExecPlayer) writeEffect(name string, samples []float64) string {
	path := filepath.Join(p.fxDir, name)
	f, err := os.Create(path)
	if err == nil {
		err = writeWAV(f, samples)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		p.logger.Debug("write effect", zap.String("file", path), zap.Error(err))
		return ""
	}
	return path
}

// Close stops every running sound and removes the synthesized effects.
func (p *ExecPlayer) Close() error {
	p.StopNarration()
	p.mu.Lock()
	for cmd := range p.effects {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
	p.mu.Unlock()
	p.wg.Wait()
	if p.fxDir != "" {
		return os.RemoveAll(p.fxDir)
	}
	return nil
}
