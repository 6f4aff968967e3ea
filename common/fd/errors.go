package fd

import (
	"strconv"

	E "github.com/sagernet/fdstream/common/exceptions"
)

var (
	ErrUnsupportedSeek   = E.New("seek unsupported on non-regular descriptor")
	ErrSpliceUnsupported = E.New("splice unsupported on this platform")
)

// OpenError reports a failure to open or classify a descriptor. Subject is
// the path, or "fd N" for borrowed descriptors.
type OpenError struct {
	Subject string
	Err     error
}

func (e *OpenError) Error() string {
	return e.Subject + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

type ReadError struct {
	Fd  int
	Err error
}

func (e *ReadError) Error() string {
	return "read error on fd " + strconv.Itoa(e.Fd) + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

type SeekError struct {
	Fd  int
	Err error
}

func (e *SeekError) Error() string {
	return "seek error on fd " + strconv.Itoa(e.Fd) + ": " + e.Err.Error()
}

func (e *SeekError) Unwrap() error {
	return e.Err
}

// Progress is implemented by skip errors that know how far the skip got.
type Progress interface {
	error
	Discarded() int64
}

var (
	_ Progress = (*TransferError)(nil)
	_ Progress = (*PrematureEndError)(nil)
)

// TransferError reports a failed splice. Hop names the leg that failed;
// Requested-Remaining bytes were consumed from the source before it did.
type TransferError struct {
	Hop       string
	Requested int64
	Remaining int64
	Err       error
}

func (e *TransferError) Error() string {
	return "splice " + e.Hop + " failed after " +
		strconv.FormatInt(e.Discarded(), 10) + " of " +
		strconv.FormatInt(e.Requested, 10) + " bytes: " + e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func (e *TransferError) Discarded() int64 {
	return e.Requested - e.Remaining
}

// PrematureEndError reports that the source ran dry while Remaining of the
// Requested bytes were still to be discarded. It is never retried.
type PrematureEndError struct {
	Requested int64
	Remaining int64
}

func (e *PrematureEndError) Error() string {
	return "splice prematurely returned 0 bytes read (expected " +
		strconv.FormatInt(e.Remaining, 10) + " more of " +
		strconv.FormatInt(e.Requested, 10) + " bytes)"
}

func (e *PrematureEndError) Discarded() int64 {
	return e.Requested - e.Remaining
}
