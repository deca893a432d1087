// Command exip wraps the codec in a pair of subcommands modeled on the
// reference exipd/exipe command-line tools: "decode" turns an EXI stream
// back into XML, "encode" turns XML into an EXI stream. Schema-informed
// mode is not wired in here -- both subcommands run the schema-less
// built-in grammars, since the tree-table XSD reader under schemagen/ is
// a library entry point, not yet a flag on this CLI.
package main

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/exip-go/exip/core"
	"github.com/exip-go/exip/sax"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	outputPath string
)

func openInput(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openOutput() (io.Writer, func() error, error) {
	if outputPath == "" || outputPath == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	in, err := openInput(args[0])
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if in != os.Stdin {
		defer in.Close()
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closeOut()

	log := logrusForVerbosity()
	factory := core.NewDefaultEXIFactory()

	dec, err := sax.NewSAXDecoder(factory)
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	enc := xml.NewEncoder(out)
	defer enc.Flush()

	root, err := dec.Parse(bufio.NewReader(in), enc)
	if err != nil {
		log.WithError(err).Error("decode failed")
		return fmt.Errorf("decoding: %w", err)
	}
	log.WithField("root", root).Debug("decode finished")
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	in, err := openInput(args[0])
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if in != os.Stdin {
		defer in.Close()
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closeOut()

	factory := core.NewDefaultEXIFactory()

	enc, err := sax.NewSAXEncoder(factory)
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}
	enc.SetErrorHandler(core.NewLogrusErrorHandler(logrusForVerbosity()))

	bw := bufio.NewWriter(out)
	if err := enc.SetWriter(bw); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := enc.Encode(bufio.NewReader(in), nil); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return bw.Flush()
}

func logrusForVerbosity() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "exip",
		Short: "Efficient XML Interchange encoder/decoder",
		Long:  "exip encodes XML to EXI and decodes EXI back to XML, bit-packed by default.",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log grammar/string-table warnings")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	decodeCmd := &cobra.Command{
		Use:   "decode <in.exi>",
		Short: "Decode an EXI stream to XML",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}

	encodeCmd := &cobra.Command{
		Use:   "encode <in.xml>",
		Short: "Encode an XML document to EXI",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncode,
	}

	rootCmd.AddCommand(decodeCmd, encodeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
