package logger

import "testing"

func TestInitLoggerValidLevels(t *testing.T) {
	tests := []string{"debug", "info", "warn", "error"}

	for i, level := range tests {
		if err := InitLogger(level); err != nil {
			t.Fatalf("tests[%d] - InitLogger(%q) failed: %v", i, level, err)
		}
		if GetLogger() == nil {
			t.Fatalf("tests[%d] - GetLogger returned nil", i)
		}
	}
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	tests := []string{"trace", "verbose", "", "INFO"}

	for i, level := range tests {
		if err := InitLogger(level); err == nil {
			t.Fatalf("tests[%d] - expected error for level %q", i, level)
		}
	}
}

func TestGetLoggerBeforeInit(t *testing.T) {
	globalLogger = nil
	if GetLogger() == nil {
		t.Fatalf("GetLogger returned nil before init")
	}
}
