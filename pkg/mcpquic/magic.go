package mcpquic

import (
	"fmt"
	"io"
)

// ReadMagic consumes the stream preamble and rejects anything but MagicBytes.
func ReadMagic(r io.Reader) error {
	buf := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("read preamble: %w", err)
	}
	if string(buf) != MagicBytes {
		return fmt.Errorf("%w: got %q", ErrBadMagic, buf)
	}
	return nil
}

// WriteMagic must be the first write on a freshly opened stream.
func WriteMagic(w io.Writer) error {
	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return fmt.Errorf("write preamble: %w", err)
	}
	return nil
}
