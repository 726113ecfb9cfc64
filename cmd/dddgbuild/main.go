// Command dddgbuild reads a (optionally gzip-compressed) instruction
// trace and builds its dynamic data dependence graph, printing a short
// summary of the result.
package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/accel-sim/dddg/internal/dddg"
	"github.com/accel-sim/dddg/internal/dddgcfg"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config overriding the builder defaults")
		tracePath  = flag.String("trace", "", "path to the trace file (use - for stdin)")
		gzipped    = flag.Bool("gzip", false, "treat the trace as gzip-compressed regardless of its extension")
	)
	flag.Parse()

	if err := run(*configPath, *tracePath, *gzipped); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, tracePath string, forceGzip bool) error {
	cfg := dddgcfg.Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("dddgbuild: reading config: %w", err)
		}
		cfg, err = dddgcfg.Load(data)
		if err != nil {
			return fmt.Errorf("dddgbuild: loading config: %w", err)
		}
	}

	r, closeFn, err := openTrace(tracePath, forceGzip)
	if err != nil {
		return err
	}
	defer closeFn()

	graph := dddg.NewGraph(cfg.ReadyMode)
	builder := dddg.NewBuilder(cfg, graph)

	report, err := builder.Build(r)
	if err != nil {
		return fmt.Errorf("dddgbuild: building graph: %w", err)
	}

	fmt.Println(report.Summary())
	return nil
}

// openTrace opens tracePath, transparently decompressing it when
// forceGzip is set or its name ends in ".gz". "-" reads stdin, which is
// never treated as compressed unless forceGzip says otherwise, since
// there is no filename to sniff an extension from.
func openTrace(tracePath string, forceGzip bool) (r io.Reader, closeFn func() error, err error) {
	if tracePath == "" {
		return nil, nil, fmt.Errorf("dddgbuild: -trace is required")
	}

	var f *os.File
	if tracePath == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(tracePath)
		if err != nil {
			return nil, nil, fmt.Errorf("dddgbuild: opening trace: %w", err)
		}
	}

	if forceGzip || strings.HasSuffix(tracePath, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("dddgbuild: opening gzip stream: %w", err)
		}
		return gz, func() error {
			gz.Close()
			return f.Close()
		}, nil
	}

	return f, f.Close, nil
}
