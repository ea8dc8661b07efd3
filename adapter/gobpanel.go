// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package adapter provides GenotypeProvider, ReferenceProvider, and
// PhasedSink implementations over concrete on-disk formats, so that
// phasor's core package never imports an encoding library directly.
package adapter

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"

	"github.com/lightning-genomics/phasor"
)

// PanelEntry is the gob record written by GobPanelWriter and read back
// by GobPanelReader, one per reference panel or target matrix. It
// mirrors the teacher's LibraryEntry: a flat, self-contained record
// streamed through a pgzip-wrapped gob.Encoder.
type PanelEntry struct {
	NumMarkers int
	NumUnits   int // haplotypes for a panel, samples for a target
	SampleIDs  []string
	Data       []uint8
}

// WriteGobPanel streams panel to w as one gzip-compressed gob record.
func WriteGobPanel(w io.Writer, panel *phasor.ReferencePanel) error {
	gzw := pgzip.NewWriter(w)
	enc := gob.NewEncoder(gzw)
	data := make([]uint8, panel.NumMarkers*panel.NumHaplotypes)
	for m := 0; m < panel.NumMarkers; m++ {
		for h := 0; h < panel.NumHaplotypes; h++ {
			data[m*panel.NumHaplotypes+h] = panel.At(m, h)
		}
	}
	if err := enc.Encode(PanelEntry{NumMarkers: panel.NumMarkers, NumUnits: panel.NumHaplotypes, Data: data}); err != nil {
		return err
	}
	return gzw.Close()
}

// ReadGobPanel reads back a ReferencePanel written by WriteGobPanel.
func ReadGobPanel(r io.Reader) (*phasor.ReferencePanel, error) {
	gzr, err := pgzip.NewReader(bufio.NewReaderSize(r, 1<<20))
	if err != nil {
		return nil, err
	}
	defer gzr.Close()
	var ent PanelEntry
	if err := gob.NewDecoder(gzr).Decode(&ent); err != nil {
		return nil, err
	}
	panel := phasor.NewReferencePanel(ent.NumMarkers, ent.NumUnits)
	for m := 0; m < ent.NumMarkers; m++ {
		for h := 0; h < ent.NumUnits; h++ {
			panel.Set(m, h, ent.Data[m*ent.NumUnits+h])
		}
	}
	return panel, nil
}

// WriteGobTarget streams target to w the same way WriteGobPanel does,
// using phasor.Missing as the sentinel for unobserved entries.
func WriteGobTarget(w io.Writer, target *phasor.TargetMatrix) error {
	gzw := pgzip.NewWriter(w)
	enc := gob.NewEncoder(gzw)
	data := make([]uint8, target.NumMarkers*target.NumSamples)
	for m := 0; m < target.NumMarkers; m++ {
		for k := 0; k < target.NumSamples; k++ {
			v, missing := target.At(m, k)
			if missing {
				v = phasor.Missing
			}
			data[m*target.NumSamples+k] = v
		}
	}
	if err := enc.Encode(PanelEntry{NumMarkers: target.NumMarkers, NumUnits: target.NumSamples, SampleIDs: target.SampleIDs, Data: data}); err != nil {
		return err
	}
	return gzw.Close()
}

// ReadGobTarget reads back a TargetMatrix written by WriteGobTarget.
func ReadGobTarget(r io.Reader) (*phasor.TargetMatrix, error) {
	gzr, err := pgzip.NewReader(bufio.NewReaderSize(r, 1<<20))
	if err != nil {
		return nil, err
	}
	defer gzr.Close()
	var ent PanelEntry
	if err := gob.NewDecoder(gzr).Decode(&ent); err != nil {
		return nil, err
	}
	target := phasor.NewTargetMatrix(ent.NumMarkers, ent.SampleIDs)
	for m := 0; m < ent.NumMarkers; m++ {
		for k := 0; k < ent.NumUnits; k++ {
			target.Set(m, k, ent.Data[m*ent.NumUnits+k])
		}
	}
	return target, nil
}

// GobPanelProvider adapts a *phasor.ReferencePanel already loaded into
// memory to the phasor.ReferenceProvider interface, for callers that
// read the gob file once up front via ReadGobPanel.
type GobPanelProvider struct {
	Panel *phasor.ReferencePanel
}

func (p GobPanelProvider) NumHaplotypes() int { return p.Panel.NumHaplotypes }
func (p GobPanelProvider) NumMarkers() int    { return p.Panel.NumMarkers }
func (p GobPanelProvider) At(marker, hap int) uint8 { return p.Panel.At(marker, hap) }

// GobTargetProvider adapts a *phasor.TargetMatrix to the
// phasor.GenotypeProvider interface.
type GobTargetProvider struct {
	Target *phasor.TargetMatrix
}

func (t GobTargetProvider) SampleIDs() []string { return t.Target.SampleIDs }
func (t GobTargetProvider) NumMarkers() int     { return t.Target.NumMarkers }
func (t GobTargetProvider) At(marker, sample int) (uint8, bool) { return t.Target.At(marker, sample) }

// FileSink writes each individual's mosaic pair to dir as one
// gzip-compressed gob file, named by sample index. It implements
// phasor.PhasedSink.
type FileSink struct {
	Dir string
}

func (s FileSink) PutMosaic(sampleIdx int, pair phasor.HaplotypeMosaicPair) error {
	f, err := os.Create(fmt.Sprintf("%s/mosaic%06d.gob.gz", s.Dir, sampleIdx))
	if err != nil {
		return err
	}
	defer f.Close()
	gzw := pgzip.NewWriter(f)
	if err := gob.NewEncoder(gzw).Encode(pair); err != nil {
		return err
	}
	return gzw.Close()
}
