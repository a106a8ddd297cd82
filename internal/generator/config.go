package generator

// Config drives the synthetic load-file generator.
type Config struct {
	NumAccounts        int
	NumActivities      int
	SharedHolderChance float64
	BadNumberChance    float64
	Seed               int64
	SerialSeed         int64
}

// DefaultConfig returns baseline settings producing a small but varied
// dataset: enough shared holders to exercise loyalty recomputation and a few
// activities against unknown accounts to exercise failure reporting.
func DefaultConfig() Config {
	return Config{
		NumAccounts:        200,
		NumActivities:      1000,
		SharedHolderChance: 0.3,
		BadNumberChance:    0.02,
		Seed:               42,
		SerialSeed:         9999,
	}
}
