// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/lightning-genomics/phasor"
	"github.com/lightning-genomics/phasor/adapter"
)

func main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		log.StandardLogger().Formatter = &log.TextFormatter{DisableTimestamp: true}
	}
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr *os.File) int {
	cfg := phasor.DefaultConfig()
	flags := flag.NewFlagSet("phasor", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cfg.Flags(flags)
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	panelPath := flags.String("panel", "", "reference panel `file` (.npy or .gob.gz)")
	targetPath := flags.String("target", "", "target genotype matrix `file` (.npy or .gob.gz)")
	samplesPath := flags.String("samples", "", "newline-delimited sample IDs `file`, required when -target is .npy")
	outPath := flags.String("o", "imputed.npy", "output imputed matrix `file` (.npy or .gob.gz)")
	qualityPath := flags.String("quality", "", "optional per-marker quality scores output `file` (.npy)")
	mosaicDir := flags.String("mosaic-dir", "", "optional directory to receive one mosaic-pair file per individual")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *panelPath == "" || *targetPath == "" {
		fmt.Fprintln(stderr, "phasor: -panel and -target are required")
		return 2
	}

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	panel, err := loadPanel(*panelPath)
	if err != nil {
		fmt.Fprintf(stderr, "phasor: %s\n", err)
		return 1
	}
	target, err := loadTarget(*targetPath, *samplesPath)
	if err != nil {
		fmt.Fprintf(stderr, "phasor: %s\n", err)
		return 1
	}

	eng := phasor.NewEngine(cfg)
	var result *phasor.Result
	if *mosaicDir != "" {
		result, err = eng.RunToSink(panel, target, adapter.FileSink{Dir: *mosaicDir})
	} else {
		result, err = eng.Run(panel, target)
	}
	if err != nil {
		fmt.Fprintf(stderr, "phasor: %s\n", err)
		return 1
	}

	if err := writeTarget(*outPath, result.Imputed); err != nil {
		fmt.Fprintf(stderr, "phasor: %s\n", err)
		return 1
	}
	if *qualityPath != "" {
		f, err := os.Create(*qualityPath)
		if err != nil {
			fmt.Fprintf(stderr, "phasor: %s\n", err)
			return 1
		}
		defer f.Close()
		if err := adapter.WriteNumpyQuality(f, result.Quality); err != nil {
			fmt.Fprintf(stderr, "phasor: %s\n", err)
			return 1
		}
	}
	return 0
}

func loadPanel(path string) (*phasor.ReferencePanel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".npy") {
		return adapter.ReadNumpyPanel(f)
	}
	return adapter.ReadGobPanel(f)
}

func loadTarget(path, samplesPath string) (*phasor.TargetMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if !strings.HasSuffix(path, ".npy") {
		return adapter.ReadGobTarget(f)
	}
	if samplesPath == "" {
		return nil, fmt.Errorf("-samples is required when -target is a .npy file")
	}
	ids, err := readSampleIDs(samplesPath)
	if err != nil {
		return nil, err
	}
	return adapter.ReadNumpyTarget(f, ids)
}

func readSampleIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids, scanner.Err()
}

func writeTarget(path string, target *phasor.TargetMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".npy") {
		return adapter.WriteNumpyTarget(f, target)
	}
	return adapter.WriteGobTarget(f, target)
}
