package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/danmuck/mactune/internal/console"
	"github.com/danmuck/mactune/internal/mode"
)

// Persister writes the deterministic artifacts under Root.
//
// Unlike catalog actions, write failures are not swallowed: a host that
// cannot persist its boot configuration must not report a successful run.
type Persister struct {
	Mode mode.Mode
	// Root is the destination root, "/" on a live host. Tests and the
	// artifact generator point it elsewhere.
	Root string
	Out  io.Writer
	Log  zerolog.Logger
}

// PersistAll writes both artifacts in their fixed order. In Simulated mode
// it logs the destinations and performs no filesystem access at all.
func (p Persister) PersistAll() error {
	if err := p.persist(SysctlConfPath, SysctlConf()); err != nil {
		return err
	}
	return p.persist(LimitMaxfilesPath, LimitMaxfilesPlist())
}

func (p Persister) persist(dest string, content []byte) error {
	if p.Mode == mode.Simulated {
		console.DryRunf(p.Out, "Would write %s", dest)
		return nil
	}
	target := p.target(dest)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("artifact dir for %s: %w", dest, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("artifact write %s: %w", dest, err)
	}
	p.Log.Info().Str("artifact", dest).Int("bytes", len(content)).Msg("artifact written")
	console.Linef(p.Out, "Wrote %s", dest)
	return nil
}

func (p Persister) target(dest string) string {
	root := p.Root
	if root == "" {
		root = "/"
	}
	return filepath.Join(root, dest)
}
