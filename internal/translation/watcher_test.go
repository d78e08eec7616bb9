package translation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qurankit/qurankit/internal/store"
)

func TestWatcher_PicksUpNewTranslation(t *testing.T) {
	dir := t.TempDir()

	c, err := NewDirectoryCatalog(dir, store.DefaultConfig(), nil)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(c, 50*time.Millisecond, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	writeTranslationDB(t, filepath.Join(dir, "new.db"), 3, "New", "en", 1)

	require.Eventually(t, func() bool {
		installed, err := c.Installed(context.Background())
		return err == nil && len(installed) == 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}
