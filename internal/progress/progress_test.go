package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDotTicker(t *testing.T) {
	var mu sync.Mutex
	var got []string

	ticker := StartDotTicker("Extracting", 5*time.Millisecond, func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 6
	}, time.Second, time.Millisecond)

	ticker.Stop()
	ticker.Stop()

	mu.Lock()
	expected := []string{"Extracting", "Extracting.", "Extracting..", "Extracting...", "Extracting", "Extracting."}
	first := append([]string(nil), got[:6]...)
	count := len(got)
	mu.Unlock()
	require.Equal(t, expected, first)

	// No emission after Stop returned
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, count, len(got))
}

func TestDotTicker_NilStop(t *testing.T) {
	var ticker *DotTicker
	ticker.Stop()
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value, total int64
		expected     int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{1, 3, 33},
		{150, 100, 100},
		{10, 0, 0},
	}

	for _, test := range tests {
		if got := Percent(test.value, test.total); got != test.expected {
			t.Errorf("Percent(%d, %d) = %d, expected %d", test.value, test.total, got, test.expected)
		}
	}
}

func TestAssetPercent(t *testing.T) {
	if got := AssetPercent(0, 10); got != 40 {
		t.Errorf("Expected 40, got %d", got)
	}
	if got := AssetPercent(5, 10); got != 50 {
		t.Errorf("Expected 50, got %d", got)
	}
	if got := AssetPercent(10, 10); got != 60 {
		t.Errorf("Expected 60, got %d", got)
	}
}

func TestLabelAndBytes(t *testing.T) {
	if Label(42) != "42%" {
		t.Errorf("Expected '42%%', got '%s'", Label(42))
	}
	if got := Bytes(1000, 2000); got != "1.0 kB / 2.0 kB" {
		t.Errorf("Unexpected bytes text: %s", got)
	}
	if got := Bytes(1000, 0); got != "1.0 kB" {
		t.Errorf("Unexpected bytes text: %s", got)
	}
}
