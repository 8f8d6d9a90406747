package output

import (
	"fmt"
	"io"
)

// RawFormatter prints values the way redis-cli does.
type RawFormatter struct{}

// Format writes the String form of data followed by a newline.
// A nil value writes nothing.
func (f *RawFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, data)
	return err
}
