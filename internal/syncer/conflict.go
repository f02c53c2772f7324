package syncer

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/remote"
	"github.com/alexanderramin/rotina/internal/store"
)

// Resolution is the outcome of a sync conflict: one side wins wholesale.
type Resolution int

const (
	// UseCloud replaces every local collection with the cloud copy.
	UseCloud Resolution = iota
	// UseLocal replaces every cloud collection with the local copy.
	UseLocal
)

func (r Resolution) String() string {
	switch r {
	case UseCloud:
		return "use cloud"
	case UseLocal:
		return "use local"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// Conflict describes a divergence found on connect: both sides hold data
// and the local side has unsynced changes. Record counts let a prompt show
// the user what each choice keeps.
type Conflict struct {
	Local domain.Snapshot
	Cloud domain.Snapshot
}

// Resolver decides which side of a conflict wins. The coordinator blocks
// on it during Connect, so interactive implementations can prompt.
type Resolver func(c Conflict) Resolution

// applyCloud overwrites every local collection with the cloud snapshot.
// Only an explicit UseCloud resolution reaches here: all seven collections
// are written, including ones empty in the cloud, so no stale local
// records survive the choice.
func applyCloud(s store.Store, cloud domain.Snapshot) error {
	for _, c := range domain.AllCollections {
		data := cloud.Data[c]
		if data == nil {
			data = []byte("[]")
		}
		if err := s.Set(c, data); err != nil {
			return fmt.Errorf("syncer: applying cloud %s: %w", c, err)
		}
	}
	return nil
}

// applyLocal overwrites every cloud collection with the local snapshot.
// The first failed save aborts so the cloud is never left half replaced
// without the caller knowing.
func applyLocal(ctx context.Context, client remote.Client, local domain.Snapshot) error {
	for _, c := range domain.AllCollections {
		data := local.Data[c]
		if data == nil {
			data = []byte("[]")
		}
		if err := client.Save(ctx, c, data); err != nil {
			return fmt.Errorf("syncer: pushing local %s: %w", c, err)
		}
	}
	return nil
}
