// Package corpus serializes extracted walk sets into training corpora for
// external embedding trainers.
//
// Sleipnir stops at the walk corpus boundary: training word vectors is the
// downstream trainer's job, consumed through the Trainer interface and never
// implemented here.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/orneryd/sleipnir/pkg/walker"
)

// Trainer consumes walk sentences and produces embeddings. External
// collaborator; Sleipnir only hands the corpus over.
type Trainer interface {
	// Train fits the model on the given sentences, one token slice per
	// canonical walk.
	Train(ctx context.Context, sentences [][]string) error
}

// Sentences converts a walk set into trainer input, in deterministic order.
func Sentences(set *walker.WalkSet) [][]string {
	walks := set.Walks()
	out := make([][]string, 0, len(walks))
	for _, cw := range walks {
		out = append(out, []string(cw))
	}
	return out
}

// Write streams the walk set to w, one walk per line, tokens joined by a
// single space, in deterministic order.
func Write(w io.Writer, set *walker.WalkSet) error {
	bw := bufio.NewWriter(w)
	for _, cw := range set.Walks() {
		if _, err := bw.WriteString(strings.Join(cw, " ")); err != nil {
			return fmt.Errorf("writing walk: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing walk: %w", err)
		}
	}
	return bw.Flush()
}

// WriteFile writes the walk corpus to path, replacing any existing file.
func WriteFile(path string, set *walker.WalkSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating corpus file %q: %w", path, err)
	}
	if err := Write(f, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
