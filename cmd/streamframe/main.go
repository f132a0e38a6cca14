// Command streamframe frames payload files with TOML-defined headers and
// inspects trace captures.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/streamframe"
	"github.com/arloliu/streamframe/format"
	"github.com/arloliu/streamframe/framer"
	"github.com/arloliu/streamframe/header"
	"github.com/arloliu/streamframe/layout"
	"github.com/arloliu/streamframe/trace"
)

var log zerolog.Logger

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "streamframe",
		Short:         "Frame payload streams with bit-packed headers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.TraceLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable trace-level logging")

	root.AddCommand(newFrameCmd(), newTraceCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newFrameCmd() *cobra.Command {
	var (
		layoutPath string
		wordBits   int
		metaKVs    []string
		inPath     string
		outPath    string
		tracePath  string
		traceCodec string
	)

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Prefix a payload file with an encoded header",
		RunE: func(cmd *cobra.Command, args []string) error {
			lay, err := layout.LoadTOML(layoutPath)
			if err != nil {
				return err
			}
			log.Debug().
				Int("header_bytes", lay.LengthBytes()).
				Str("fingerprint", fmt.Sprintf("%016x", lay.Fingerprint())).
				Msg("layout loaded")

			meta, err := parseMeta(metaKVs)
			if err != nil {
				return err
			}

			payload, err := os.ReadFile(inPath)
			if err != nil {
				return err
			}

			opts := []framer.Option{framer.WithLogger(log)}

			var rec *trace.Recorder
			if tracePath != "" {
				rec = trace.NewRecorder(wordBits, lay.Fingerprint())
				opts = append(opts, framer.WithRecorder(rec))
			}

			framed, err := streamframe.Frame(lay, wordBits, meta, payload, opts...)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, framed, 0o644); err != nil {
				return err
			}
			log.Info().
				Int("payload_bytes", len(payload)).
				Int("framed_bytes", len(framed)).
				Str("out", outPath).
				Msg("frame written")

			if rec != nil {
				codec, err := format.ParseCompression(traceCodec)
				if err != nil {
					return err
				}
				if err := rec.WriteFile(tracePath, codec); err != nil {
					return err
				}
				log.Info().Str("trace", tracePath).Stringer("codec", codec).Msg("trace written")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&layoutPath, "layout", "", "TOML layout file (required)")
	cmd.Flags().IntVar(&wordBits, "word-bits", 8, "transport word width in bits")
	cmd.Flags().StringArrayVar(&metaKVs, "meta", nil, "field value as name=value, repeatable")
	cmd.Flags().StringVar(&inPath, "in", "", "payload input file (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "framed output file (required)")
	cmd.Flags().StringVar(&tracePath, "trace", "", "write a word trace capture to this file")
	cmd.Flags().StringVar(&traceCodec, "trace-codec", "s2", "trace body compression: none, s2, lz4, zstd")
	_ = cmd.MarkFlagRequired("layout")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect trace captures",
	}

	dump := &cobra.Command{
		Use:   "dump <capture>",
		Short: "Print the words of a trace capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := trace.ReadFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("word bits:   %d\n", tr.WordBits)
			fmt.Printf("fingerprint: %016x\n", tr.Fingerprint)
			fmt.Printf("words:       %d\n", len(tr.Words))

			digits := tr.WordBits / 4
			for i, w := range tr.Words {
				var marks []string
				if w.Start {
					marks = append(marks, "start")
				}
				if w.End {
					marks = append(marks, "end")
				}
				if w.Error {
					marks = append(marks, "error")
				}
				fmt.Printf("%6d  %0*x  %s\n", i, digits, w.Data, strings.Join(marks, ","))
			}

			return nil
		},
	}

	cmd.AddCommand(dump)

	return cmd
}

// parseMeta converts name=value pairs into a metadata record. Values accept
// the usual Go integer literals (0x.., 0o.., decimal).
func parseMeta(kvs []string) (header.MapRecord, error) {
	meta := make(header.MapRecord, len(kvs))
	for _, kv := range kvs {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid meta %q, want name=value", kv)
		}

		v, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid meta value %q: %w", kv, err)
		}
		meta[name] = v
	}

	return meta, nil
}
