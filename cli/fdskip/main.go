package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sagernet/fdstream"
	E "github.com/sagernet/fdstream/common/exceptions"
	"github.com/sagernet/fdstream/common/log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"
	"lukechampine.com/blake3"
)

var logger = log.NewLogger("fdskip")

type flags struct {
	Skip       int64 `json:"skip"`
	Limit      int64 `json:"limit"`
	Fd         int   `json:"fd"`
	BufferSize int   `json:"buffer_size"`
	XZ         bool  `json:"xz"`
	Blake3     bool  `json:"blake3"`
	Verbose    bool  `json:"verbose"`
	ConfigFile string
}

func main() {
	f := new(flags)

	command := &cobra.Command{
		Use:     "fdskip [path]",
		Short:   "skip the head of a file, pipe or stream and copy the rest",
		Version: fdstream.Version,
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := run(f, args, os.Stdout)
			if err != nil {
				logrus.Fatal(err)
			}
		},
	}

	command.Flags().Int64VarP(&f.Skip, "skip", "s", 0, "Set the number of bytes to discard before copying.")
	command.Flags().Int64VarP(&f.Limit, "limit", "n", 0, "Copy at most this many bytes after skipping. 0 copies everything.")
	command.Flags().IntVar(&f.Fd, "fd", -1, "Read from an already open descriptor instead of a path. Defaults to stdin when no path is given.")
	command.Flags().IntVarP(&f.BufferSize, "buffer-size", "b", fdstream.DefaultBufferSize, "Set the read buffer size.")
	command.Flags().BoolVar(&f.XZ, "xz", false, "Decode the remainder as an xz stream.")
	command.Flags().BoolVar(&f.Blake3, "blake3", false, "Print the BLAKE3-256 digest and length of the remainder instead of the bytes.")
	command.Flags().StringVarP(&f.ConfigFile, "config", "c", "", "Use a configuration file.")
	command.Flags().BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose mode.")

	err := command.Execute()
	if err != nil {
		logrus.Fatal(err)
	}
}

func loadConfig(f *flags) error {
	if f.ConfigFile == "" {
		return nil
	}
	content, err := os.ReadFile(f.ConfigFile)
	if err != nil {
		return E.Cause(err, "read config file")
	}
	flagsNew := new(flags)
	err = json.Unmarshal(content, flagsNew)
	if err != nil {
		return E.Cause(err, "decode config file")
	}
	if flagsNew.Skip != 0 && f.Skip == 0 {
		f.Skip = flagsNew.Skip
	}
	if flagsNew.Limit != 0 && f.Limit == 0 {
		f.Limit = flagsNew.Limit
	}
	if flagsNew.Fd != 0 && f.Fd == -1 {
		f.Fd = flagsNew.Fd
	}
	if flagsNew.BufferSize != 0 && f.BufferSize == fdstream.DefaultBufferSize {
		f.BufferSize = flagsNew.BufferSize
	}
	if flagsNew.XZ {
		f.XZ = true
	}
	if flagsNew.Blake3 {
		f.Blake3 = true
	}
	if flagsNew.Verbose {
		f.Verbose = true
	}
	return nil
}

func open(f *flags, args []string) (*fdstream.Stream, error) {
	options := []fdstream.Option{
		fdstream.WithBufferSize(f.BufferSize),
		fdstream.WithLogger(logger),
	}
	if len(args) > 0 {
		if f.Fd >= 0 {
			return nil, E.New("both a path and --fd given")
		}
		return fdstream.Open(args[0], options...)
	}
	id := f.Fd
	if id < 0 {
		id = int(os.Stdin.Fd())
	}
	return fdstream.NewStream(id, options...)
}

func run(f *flags, args []string, output io.Writer) error {
	err := loadConfig(f)
	if err != nil {
		return err
	}
	log.SetVerbose(f.Verbose)
	if f.Skip < 0 {
		return E.New("negative skip: ", f.Skip)
	}

	stream, err := open(f, args)
	if err != nil {
		return E.Cause(err, "open input")
	}
	defer stream.Close()
	logger.Debug("reading ", stream.Kind(), " fd ", stream.Fd(), " from position ", stream.Position())

	if f.Skip > 0 {
		position, err := stream.Skip(f.Skip)
		if err != nil {
			return E.Cause(err, "skip ", f.Skip, " bytes")
		}
		logger.Debug("skipped to position ", position)
	}

	var reader io.Reader = stream
	if f.XZ {
		reader, err = xz.NewReader(reader)
		if err != nil {
			return E.Cause(err, "decode xz header")
		}
	}
	if f.Limit > 0 {
		reader = io.LimitReader(reader, f.Limit)
	}

	if f.Blake3 {
		hasher := blake3.New(32, nil)
		n, err := io.Copy(hasher, reader)
		if err != nil {
			return E.Cause(err, "hash remainder")
		}
		_, err = fmt.Fprintln(output, hex.EncodeToString(hasher.Sum(nil)), n)
		return err
	}
	n, err := io.Copy(output, reader)
	if err != nil {
		return E.Cause(err, "copy remainder")
	}
	logger.Debug("copied ", n, " bytes")
	return nil
}
