package session

import (
	"bufio"
	"fmt"
	"io"
)

// Transport is the interactive line channel to the counterparty. The session
// is strictly request/response: it writes prompts and artifacts, then blocks
// on ReadLine until the next line arrives. There is no timeout; an
// unresponsive counterparty stalls the session by design.
type Transport interface {
	// ReadLine blocks until the next input line. io.EOF means the
	// counterparty closed the channel.
	ReadLine() (string, error)

	// Printf writes formatted output to the counterparty.
	Printf(format string, args ...any)
}

type lineTransport struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineTransport wraps a reader/writer pair (stdin/stdout in production)
// as a Transport.
func NewLineTransport(r io.Reader, w io.Writer) Transport {
	return &lineTransport{
		scanner: bufio.NewScanner(r),
		out:     w,
	}
}

func (t *lineTransport) ReadLine() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return t.scanner.Text(), nil
}

func (t *lineTransport) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}
