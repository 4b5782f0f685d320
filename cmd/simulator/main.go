// Command simulator runs the process scheduler simulator described by a
// configuration file: load config, load the metadata program it names, run
// the engine to completion, flush the timeline log. CLI shape and the
// terminal-detection idiom are grounded on
// _examples/gmofishsauce-wut4/emul/main.go.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mpetrov/ossim/internal/config"
	"github.com/mpetrov/ossim/internal/diag"
	"github.com/mpetrov/ossim/internal/engine"
	"github.com/mpetrov/ossim/internal/metadata"
	"github.com/mpetrov/ossim/internal/simerr"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <config-file>\n", os.Args[0])
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}

	log := diag.New(os.Stderr)

	if err := run(args[0], log); err != nil {
		// Both kinds terminate with exit code 0 per spec.md §7 — only a
		// missing argument is worth a nonzero status. zerolog's Fatal
		// level would call os.Exit itself, so diagnostics always log at
		// Error; only the printed prefix distinguishes the two.
		prefix := "Error"
		if isStartupFatal(err) {
			prefix = "Fatal"
		}
		log.Error().Err(err).Msg("simulator aborted")
		fmt.Printf("%s: %v\n", prefix, err)
	}
}

// isStartupFatal reports whether err prevented the engine from ever
// starting, per spec.md §7's error-kind policy.
func isStartupFatal(err error) bool {
	for _, sentinel := range []error{
		simerr.ErrConfigRead,
		simerr.ErrConfigInvalid,
		simerr.ErrConfigValueInvalid,
		simerr.ErrMetaRead,
		simerr.ErrMetaInvalid,
		simerr.ErrOutOfMemory,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func run(configPath string, log zerolog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	fmt.Print(cfg.String())
	log.Info().Str("config", configPath).Msg("configuration loaded")

	ops, err := metadata.Load(cfg.MetaDataPath)
	if err != nil {
		return err
	}
	log.Info().Int("ops", len(ops)).Str("program", cfg.MetaDataPath).Msg("metadata program loaded")

	eng := engine.New(cfg, ops, log)
	return eng.Run()
}
