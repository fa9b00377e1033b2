package types

import "fmt"

// FormatError reports a structural problem found while probing or
// walking a container: a bad magic, a truncated header, a checksum
// that doesn't match, an out-of-range track/sector chain entry.
type FormatError struct {
	Offset  int64  // byte offset of the record that failed, -1 if not applicable
	Message string
	Context any // the offending value, if any; nil otherwise
}

func (e *FormatError) Error() string {
	msg := e.Message
	if e.Context != nil {
		msg += fmt.Sprintf(" %#v", e.Context)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %#x", e.Offset)
	}
	return msg
}
