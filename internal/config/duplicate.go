package config

// DuplicateConfig holds settings for duplicate position detection in batch
// runs.
type DuplicateConfig struct {
	// Suppress leaves repeated positions out of the reports
	Suppress bool

	// ExactMatch only counts a repeat reached after the same number of plies
	ExactMatch bool

	// MaxCapacity bounds the positions remembered; 0 means unlimited
	MaxCapacity int
}

// Validate checks that the duplicate configuration is valid.
func (d *DuplicateConfig) Validate() error {
	if d.MaxCapacity < 0 {
		return invalid("duplicate capacity must not be negative, got %d", d.MaxCapacity)
	}
	return nil
}
