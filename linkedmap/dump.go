package linkedmap

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Dump writes every entry in insertion order, one per line, with its key,
// value and insertion time. The format is a debugging aid and may change.
func (m *Map[K, V]) Dump(w io.Writer) error {
	for i := m.head.first; i != nilIdx; {
		n := m.nodes.at(i)
		_, err := fmt.Fprintf(w, "key=%v value=%v time=%s\n",
			n.key, n.val, time.Unix(0, n.at).UTC().Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
		i = n.next
	}
	return nil
}

// String returns the Dump output.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	_ = m.Dump(&b)
	return b.String()
}
