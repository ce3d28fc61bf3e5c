package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(ch chan Progress) []Progress {
	var out []Progress
	for {
		select {
		case p := <-ch:
			out = append(out, p)
		default:
			return out
		}
	}
}

func TestProgressReporter_TwoPasses(t *testing.T) {
	ch := make(chan Progress, 16)
	p := newProgressReporter(ch)

	p.beginPass(10, 0, 50)
	p.add(5)
	p.add(5)
	p.beginPass(10, 50, 100)
	p.add(4)
	p.add(6)
	p.finish()

	got := drain(ch)
	require.Len(t, got, 5)
	assert.Equal(t, Progress{Percent: 25, Processed: 5, Total: 10}, got[0])
	assert.Equal(t, Progress{Percent: 50, Processed: 10, Total: 10}, got[1])
	assert.Equal(t, Progress{Percent: 70, Processed: 14, Total: 20}, got[2])
	assert.Equal(t, Progress{Percent: 100, Processed: 20, Total: 20}, got[4])
}

func TestProgressReporter_Monotonic(t *testing.T) {
	ch := make(chan Progress, 16)
	p := newProgressReporter(ch)

	p.beginPass(4, 0, 100)
	p.add(3)
	// A later pass that maps lower must not move backwards
	p.beginPass(4, 0, 50)
	p.add(1)

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, 75.0, got[0].Percent)
	assert.Equal(t, 75.0, got[1].Percent)
	assert.GreaterOrEqual(t, got[1].Processed, got[0].Processed)
}

func TestProgressReporter_NeverBlocks(t *testing.T) {
	ch := make(chan Progress) // unbuffered, nobody reading
	p := newProgressReporter(ch)
	p.beginPass(1000, 0, 100)
	for range 1000 {
		p.add(1)
	}
	p.finish()
}

func TestProgressReporter_NilChannel(t *testing.T) {
	p := newProgressReporter(nil)
	p.beginPass(2, 0, 100)
	p.add(2)
	p.finish()
	assert.Equal(t, 100.0, p.lastPercent)
}
