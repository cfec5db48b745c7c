package plugin

import "fmt"

// restore seeds the cache from the snapshot file. A missing or unreadable
// snapshot means a cold start.
func (p *Plugin) restore() {
	snap, err := p.store.Load(p.snapshotPath)
	if err != nil {
		p.logger.Warn("elm: ignoring cache snapshot: " + err.Error())
		return
	}
	if snap == nil {
		return
	}
	n := p.cache.Restore(*snap)
	p.logger.Debug(fmt.Sprintf("elm: restored %d cached modules from %s", n, p.snapshotPath))
}

// persist writes the cache to the snapshot file.
func (p *Plugin) persist() {
	if p.snapshotPath == "" {
		return
	}
	if err := p.store.Save(p.snapshotPath, p.cache.Snapshot()); err != nil {
		p.logger.Warn("elm: failed to save cache snapshot: " + err.Error())
	}
}
