package sysmem

import (
	"runtime"
	"strings"
	"testing"
)

func TestTotal(t *testing.T) {
	result := Total()

	if result.TotalBytes == 0 {
		t.Error("Total() returned 0 bytes")
	}

	switch runtime.GOOS {
	case "linux", "darwin":
		if !result.Reliable {
			t.Logf("memory detection not reliable on %s", runtime.GOOS)
		}
	default:
		if result.Reliable {
			t.Errorf("expected Reliable=false on %s", runtime.GOOS)
		}
		if result.TotalBytes != DefaultMemoryBytes {
			t.Errorf("expected fallback %d on %s, got %d", DefaultMemoryBytes, runtime.GOOS, result.TotalBytes)
		}
	}

	t.Logf("detected memory: %s", result)
}

func TestResultString(t *testing.T) {
	r := Result{TotalBytes: DefaultMemoryBytes}
	if got := r.String(); got != "4.00 GiB (fallback)" {
		t.Errorf("String() = %q", got)
	}
	r.Reliable = true
	if strings.Contains(r.String(), "fallback") {
		t.Errorf("reliable result rendered as fallback: %q", r.String())
	}
}
