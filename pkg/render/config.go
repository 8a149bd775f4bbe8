package render

// Config holds the per-render parameters the scheduler snapshots at
// the start of every render job.
type Config struct {
	Width, Height    int
	FOVRadians       float64
	SamplesPerPixel  int
	LightSamples     int
	MaxBounces       int
	SingleThreaded   bool
	HighDPI          bool
}

// DefaultConfig matches SPEC_FULL.md's CLI defaults (600x600, 90 deg
// fov, 4 samples, 4 light samples, 50 bounces).
func DefaultConfig() Config {
	return Config{
		Width:           600,
		Height:          600,
		FOVRadians:      1.5707963267948966, // 90 degrees
		SamplesPerPixel: 4,
		LightSamples:    4,
		MaxBounces:      50,
	}
}
