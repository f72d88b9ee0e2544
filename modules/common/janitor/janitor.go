package janitor

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor prunes per-id artifact directories on ephemeral storage once they
// outlive their retention window. Durable backends keep artifacts
// indefinitely and never run one.
type Janitor struct {
	baseDir string
	ttl     time.Duration
	cron    *cron.Cron
}

func New(baseDir string, ttl time.Duration) *Janitor {
	return &Janitor{
		baseDir: baseDir,
		ttl:     ttl,
		cron:    cron.New(),
	}
}

// Start schedules an hourly sweep.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("0 * * * *", func() {
		if removed, err := j.Sweep(time.Now()); err != nil {
			log.Printf("⚠️ [Janitor] Sweep failed: %v", err)
		} else if removed > 0 {
			log.Printf("🧹 [Janitor] Removed %d expired bundles", removed)
		}
	}); err != nil {
		return err
	}

	j.cron.Start()
	log.Printf("🔄 [Janitor] Started (dir: %s, ttl: %s)", j.baseDir, j.ttl)
	return nil
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

// Sweep removes id directories whose last modification is older than the
// retention window. Returns how many bundles were removed.
func (j *Janitor) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(j.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(info.ModTime()) > j.ttl {
			dir := filepath.Join(j.baseDir, entry.Name())
			if err := os.RemoveAll(dir); err != nil {
				log.Printf("⚠️ [Janitor] Failed to remove %s: %v", dir, err)
				continue
			}
			removed++
		}
	}

	return removed, nil
}
