package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.GenerateString()
	id2 := gen.GenerateString()

	assert.Len(t, id1, 26)
	assert.NotEqual(t, id1, id2)
	assert.Less(t, id1, id2, "IDs from one generator sort in creation order")
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{"call", "req"} {
		t.Run(prefix, func(t *testing.T) {
			id := gen.GenerateWithPrefix(prefix)
			require.True(t, strings.HasPrefix(id, prefix+"_"), id)
			assert.True(t, IsValid(id))
		})
	}
}

func TestNewCallID(t *testing.T) {
	callID := NewCallID()
	assert.True(t, strings.HasPrefix(callID.String(), "call_"))
	assert.True(t, IsValid(callID.String()))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", NewGenerator().GenerateString(), true},
		{"prefixed", NewCallID().String(), true},
		{"empty", "", false},
		{"garbage", "not-a-ulid", false},
		{"prefixed garbage", "call_xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.input))
		})
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	callID := NewCallID()
	after := time.Now()

	ts, err := Timestamp(callID.String())
	require.NoError(t, err)
	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(after))

	_, err = Timestamp("bogus")
	assert.Error(t, err)
}

func TestDeterministicEntropy(t *testing.T) {
	gen := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64)))
	id := gen.Generate()
	assert.Equal(t, [10]byte{}, [10]byte(id.Entropy()))
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const workers, perWorker = 8, 100

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := gen.GenerateString()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}
