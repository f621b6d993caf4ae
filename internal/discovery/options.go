package discovery

import "github.com/gruntwork-io/treehook/internal/filter"

// WithConfigFilename sets the configuration marker file name.
func (d *Discovery) WithConfigFilename(filename string) *Discovery {
	if filename != "" {
		d.configFilename = filename
	}

	return d
}

// WithSelectors sets the project selectors.
func (d *Discovery) WithSelectors(selectors *filter.Selectors) *Discovery {
	d.selectors = selectors
	return d
}

// WithExcludeDirs sets a predicate for directories excluded by workspace-level filters.
func (d *Discovery) WithExcludeDirs(exclude func(rel string) bool) *Discovery {
	d.excludeDir = exclude
	return d
}

// WithNumWorkers sets the number of concurrent workers.
func (d *Discovery) WithNumWorkers(numWorkers int) *Discovery {
	if numWorkers > 0 && numWorkers <= maxDiscoveryWorkers {
		d.numWorkers = numWorkers
	}

	return d
}

// WithFollowSymlinks descends into symlinked directories outside the root.
func (d *Discovery) WithFollowSymlinks() *Discovery {
	d.followSymlinks = true
	return d
}

// WithNoHidden excludes hidden directories from discovery.
func (d *Discovery) WithNoHidden() *Discovery {
	d.noHidden = true
	return d
}
