//go:build !linux

package fd

func splicePipeToSink(h *Handle, pool *Pool, n int64) error {
	return &TransferError{Hop: "fifo to sink", Requested: n, Remaining: n, Err: ErrSpliceUnsupported}
}

func spliceThroughPipe(h *Handle, pool *Pool, n int64) error {
	return &TransferError{Hop: "source to pipe", Requested: n, Remaining: n, Err: ErrSpliceUnsupported}
}
