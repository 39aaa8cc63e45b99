package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/sleipnir/pkg/walker"
)

func buildSet() *walker.WalkSet {
	set := walker.NewWalkSet()
	set.Add(walker.CanonicalWalk{"B", "label", "C"})
	set.Add(walker.CanonicalWalk{"A", "label", "B"})
	set.Add(walker.CanonicalWalk{"A", "label", "B"}) // duplicate collapses
	return set
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, buildSet()))

	assert.Equal(t, "A label B\nB label C\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walks.txt")
	require.NoError(t, WriteFile(path, buildSet()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A label B\nB label C\n", string(data))
}

func TestSentences(t *testing.T) {
	sentences := Sentences(buildSet())

	require.Len(t, sentences, 2)
	assert.Equal(t, []string{"A", "label", "B"}, sentences[0])
	assert.Equal(t, []string{"B", "label", "C"}, sentences[1])
}
