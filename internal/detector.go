package internal

import "sync"

// changeDetector remembers the newest chapter seen for each manga. It lives
// in memory only, so a restart re-baselines without notifying.
type changeDetector struct {
	mu   sync.Mutex
	last map[string]string // manga ID → chapter ID.
}

func newChangeDetector() *changeDetector {
	return &changeDetector{last: map[string]string{}}
}

// observe records the chapter and returns true if it replaces a different
// chapter we saw earlier. The first sighting of a manga is never a release.
func (d *changeDetector) observe(mangaID, chapterID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, ok := d.last[mangaID]
	d.last[mangaID] = chapterID
	return ok && prev != chapterID
}

func (d *changeDetector) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.last)
}
