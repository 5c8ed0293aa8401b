package walker

import (
	"context"
	"fmt"
	"path"

	"github.com/sdejongh/ntfsnorris/pkg/ntfs"
)

// resolveCollision finds an unoccupied variant of name in dir and returns
// it with the collision counter that produced it, 0 when the name itself
// was free.
//
// Candidates are built against the original base so suffixes never
// accumulate: a.txt, a_1.txt, a_2.txt and so on. Occupancy is probed on
// the live filesystem, renames simulated earlier in a dry run are not
// taken into account.
func (e *Engine) resolveCollision(ctx context.Context, dir, name string) (string, int, error) {
	occupied, err := e.backend.Exists(ctx, path.Join(dir, name))
	if err != nil {
		return "", 0, fmt.Errorf("failed to probe target name: %w", err)
	}
	if !occupied {
		return name, 0, nil
	}

	base, ext := ntfs.SplitExt(name)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)

		occupied, err := e.backend.Exists(ctx, path.Join(dir, candidate))
		if err != nil {
			return "", 0, fmt.Errorf("failed to probe target name: %w", err)
		}
		if !occupied {
			return candidate, counter, nil
		}
	}
}
