// Package config parses and displays the simulator's configuration file,
// one of the "deliberately out of scope" external collaborators named in
// spec.md §1. The format and the nine recognized keys are grounded on
// _examples/original_source/512,388/ConfigAccess.c; field ordering in
// String (the round-trip/display form) matches that file's
// logConfigData.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mpetrov/ossim/internal/simerr"
)

// Policy is a CPU scheduling policy code.
type Policy string

const (
	FCFSNonPreemptive   Policy = "FCFS-N"
	SJFNonPreemptive    Policy = "SJF-N"
	SRTFPreemptive      Policy = "SRTF-P"
	FCFSPreemptive      Policy = "FCFS-P"
	RoundRobinPreempt   Policy = "RR-P"
)

// Preemptive reports whether the policy preempts the running process.
func (p Policy) Preemptive() bool {
	switch p {
	case FCFSPreemptive, SRTFPreemptive, RoundRobinPreempt:
		return true
	default:
		return false
	}
}

// LogTo selects where the timeline log is emitted.
type LogTo string

const (
	LogMonitor LogTo = "Monitor"
	LogFile    LogTo = "File"
	LogBoth    LogTo = "Both"
)

const configHeader = "Start Simulator Configuration File:"

const (
	keyVersion     = "Version/Phase"
	keyMetaPath    = "File Path"
	keySchedule    = "CPU Scheduling Code"
	keyQuantum     = "Quantum Time (cycles)"
	keyMemory      = "Memory Available (MB)"
	keyProcCycle   = "Processor Cycle Time (msec)"
	keyIOCycle     = "I/O Cycle Time (msec)"
	keyLogTo       = "Log To"
	keyLogFilePath = "Log File Path"
)

// Config is the parsed, typed form of the configuration file.
type Config struct {
	Version        string
	MetaDataPath   string
	Schedule       Policy
	QuantumCycles  int
	MemAvailableMB int
	ProcCycleMS    int
	IOCycleMS      int
	LogTo          LogTo
	LogFilePath    string
}

// Load reads and parses a configuration file from disk.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", simerr.ErrConfigRead, path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a configuration document from r.
func Parse(r *os.File) (Config, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return Config{}, fmt.Errorf("%w: empty file", simerr.ErrConfigInvalid)
	}
	header := strings.TrimSuffix(strings.TrimSpace(scanner.Text()), ":")
	if header != strings.TrimSuffix(configHeader, ":") {
		return Config{}, fmt.Errorf("%w: missing header line %q", simerr.ErrConfigInvalid, configHeader)
	}

	cfg := Config{}
	seen := map[string]bool{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Config{}, fmt.Errorf("%w: malformed line %q", simerr.ErrConfigInvalid, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := assign(&cfg, key, value); err != nil {
			return Config{}, err
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", simerr.ErrConfigRead, err)
	}

	if cfg.Schedule == "" {
		cfg.Schedule = FCFSNonPreemptive
	}
	return cfg, nil
}

func assign(cfg *Config, key, value string) error {
	switch key {
	case keyVersion:
		cfg.Version = value
	case keyMetaPath:
		cfg.MetaDataPath = value
	case keySchedule:
		cfg.Schedule = parseSchedule(value)
	case keyQuantum:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", simerr.ErrConfigValueInvalid, key, err)
		}
		cfg.QuantumCycles = n
	case keyMemory:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", simerr.ErrConfigValueInvalid, key, err)
		}
		cfg.MemAvailableMB = n
	case keyProcCycle:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", simerr.ErrConfigValueInvalid, key, err)
		}
		cfg.ProcCycleMS = n
	case keyIOCycle:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", simerr.ErrConfigValueInvalid, key, err)
		}
		cfg.IOCycleMS = n
	case keyLogTo:
		cfg.LogTo = parseLogTo(value)
	case keyLogFilePath:
		cfg.LogFilePath = value
	default:
		// Unrecognised keys are ignored, matching the original's
		// silent no-op "switch" fallthrough in getDataLine.
	}
	return nil
}

func parseSchedule(value string) Policy {
	switch Policy(value) {
	case SJFNonPreemptive, SRTFPreemptive, FCFSPreemptive, RoundRobinPreempt:
		return Policy(value)
	default:
		return FCFSNonPreemptive
	}
}

func parseLogTo(value string) LogTo {
	switch LogTo(value) {
	case LogFile:
		return LogFile
	case LogBoth:
		return LogBoth
	default:
		return LogMonitor
	}
}

// String reproduces the simulator's configuration display block, field
// order matching logConfigData in the original C source.
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Config File Display\n===================\n\n")
	fmt.Fprintf(&b, "Version                : %s\n", c.Version)
	fmt.Fprintf(&b, "Program file name      : %s\n", c.MetaDataPath)
	fmt.Fprintf(&b, "CPU schedule selection : %s\n", c.Schedule)
	fmt.Fprintf(&b, "Quantum time           : %d\n", c.QuantumCycles)
	fmt.Fprintf(&b, "Memory Avalable        : %d\n", c.MemAvailableMB)
	fmt.Fprintf(&b, "Process cycle rate     : %d\n", c.ProcCycleMS)
	fmt.Fprintf(&b, "I/O cycle rate         : %d\n", c.IOCycleMS)
	fmt.Fprintf(&b, "Log to selection       : %s\n", c.LogTo)
	fmt.Fprintf(&b, "Log file name          : %s\n\n", c.LogFilePath)
	return b.String()
}
