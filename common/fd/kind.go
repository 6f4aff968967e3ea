package fd

import "golang.org/x/sys/unix"

type Kind uint8

const (
	KindRegular Kind = iota
	KindFifo
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindFifo:
		return "fifo"
	default:
		return "other"
	}
}

func kindOf(mode uint32) Kind {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		return KindRegular
	case unix.S_IFIFO:
		return KindFifo
	default:
		return KindOther
	}
}

func classify(fd int) (Kind, error) {
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return KindOther, err
	}
	return kindOf(uint32(stat.Mode)), nil
}
