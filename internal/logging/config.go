package logging

// Config defines the logging section of the thunkx configuration file.
type Config struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	// THUNKX_LOG_LEVEL overrides it.
	Level string `yaml:"level"`

	// ReportCaller includes file, line and function in each entry.
	ReportCaller bool `yaml:"report_caller"`

	// Format is "text" (default) or "json".
	Format string `yaml:"format"`

	// Output is "auto" (default), "stderr" or "discard".
	// In auto mode entries go to stderr only when stderr is not a terminal
	// or the level is debug, so interactive sessions stay clean.
	Output string `yaml:"output"`

	DisableTimestamp bool `yaml:"disable_timestamp"`
}
