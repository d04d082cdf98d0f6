package configs

// Solver holds configuration for the MILP solver backend. A zero
// TimeLimitSeconds leaves the solver's own default in place.
type Solver struct {
	// TimeLimitSeconds bounds a single solve. Defaults to 30 seconds.
	TimeLimitSeconds float64 `env:"TIME_LIMIT_SECONDS" envDefault:"30"`
	// Output enables the solver's own log output. Off by default; the
	// application logs through slog.
	Output bool `env:"OUTPUT" envDefault:"false"`
}
