package config

const (
	defaultStateDir     = "~/.local/share/bindery"
	defaultLogDir       = "~/.local/share/bindery/logs"
	defaultMinSizeBytes = 1024
	defaultWorkers      = 4
	defaultTodoFile     = "todo.md"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

func defaultExtensions() []string {
	return []string{"pdf", "epub", "txt"}
}

func defaultSkipDirs() []string {
	return []string{"Xcode", "node_modules", ".git", "__pycache__"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Scan: Scan{
			Extensions:   defaultExtensions(),
			MaxDepth:     0,
			Recursive:    true,
			SkipDirs:     defaultSkipDirs(),
			MinSizeBytes: defaultMinSizeBytes,
		},
		Rename: Rename{
			PreserveUnicode: false,
		},
		Dedupe: Dedupe{
			Enabled: true,
			Workers: defaultWorkers,
		},
		Report: Report{
			TodoFile: defaultTodoFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
