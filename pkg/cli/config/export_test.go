package config

import "time"

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewCasesForTest creates a Cases config for testing purposes
func NewCasesForTest(path string) *Cases {
	return &Cases{path: path}
}

// NewUpstreamForTest creates an Upstream config for testing purposes
func NewUpstreamForTest(baseURL, model string, timeout time.Duration) *Upstream {
	return &Upstream{
		baseURL: baseURL,
		model:   model,
		timeout: timeout,
	}
}

// DefaultCasesForTest exposes the embedded case set
func DefaultCasesForTest() []byte {
	return defaultCases
}
