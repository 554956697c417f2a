package protocol

import (
	"bufio"
	"io"
	"sync"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/goccy/go-json"
)

// MessageWriter emits protocol messages as JSON lines. Flushed per message so
// a downstream consumer observes checkpoints as soon as they are written.
type MessageWriter struct {
	mu  sync.Mutex
	out *bufio.Writer
}

func NewMessageWriter(out io.Writer) *MessageWriter {
	return &MessageWriter{
		out: bufio.NewWriter(out),
	}
}

func (w *MessageWriter) Write(message *types.Message) error {
	raw, err := json.Marshal(message)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.out.Write(raw); err != nil {
		return err
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return err
	}

	return w.out.Flush()
}
