// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package adapter

import (
	"fmt"
	"io"

	"github.com/kshedden/gonpy"

	"github.com/lightning-genomics/phasor"
)

// WriteNumpyPanel writes panel as a NumMarkers x NumHaplotypes uint8
// .npy array, the layout MendelImpute-style callers expect for a
// reference haplotype matrix.
func WriteNumpyPanel(w io.Writer, panel *phasor.ReferencePanel) error {
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return err
	}
	npw.Shape = []int{panel.NumMarkers, panel.NumHaplotypes}
	data := make([]uint8, panel.NumMarkers*panel.NumHaplotypes)
	for m := 0; m < panel.NumMarkers; m++ {
		for h := 0; h < panel.NumHaplotypes; h++ {
			data[m*panel.NumHaplotypes+h] = panel.At(m, h)
		}
	}
	return npw.WriteUint8(data)
}

// ReadNumpyPanel reads a NumMarkers x NumHaplotypes uint8 .npy array
// written by WriteNumpyPanel.
func ReadNumpyPanel(r io.Reader) (*phasor.ReferencePanel, error) {
	npy, err := gonpy.NewReader(r)
	if err != nil {
		return nil, err
	}
	if len(npy.Shape) != 2 {
		return nil, fmt.Errorf("numpy panel: expected a 2-D array, got shape %v", npy.Shape)
	}
	data, err := npy.GetUint8()
	if err != nil {
		return nil, err
	}
	numMarkers, numHaplotypes := npy.Shape[0], npy.Shape[1]
	panel := phasor.NewReferencePanel(numMarkers, numHaplotypes)
	for m := 0; m < numMarkers; m++ {
		for h := 0; h < numHaplotypes; h++ {
			panel.Set(m, h, data[m*numHaplotypes+h])
		}
	}
	return panel, nil
}

// WriteNumpyTarget writes target as a NumMarkers x NumSamples uint8
// .npy array, using phasor.Missing as the sentinel dosage.
func WriteNumpyTarget(w io.Writer, target *phasor.TargetMatrix) error {
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return err
	}
	npw.Shape = []int{target.NumMarkers, target.NumSamples}
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
	return npw.WriteUint8(data)
}

// ReadNumpyTarget reads a NumMarkers x NumSamples uint8 .npy array
// written by WriteNumpyTarget. sampleIDs must match the array's second
// dimension; the numpy format itself carries no sample identifiers.
func ReadNumpyTarget(r io.Reader, sampleIDs []string) (*phasor.TargetMatrix, error) {
	npy, err := gonpy.NewReader(r)
	if err != nil {
		return nil, err
	}
	if len(npy.Shape) != 2 {
		return nil, fmt.Errorf("numpy target: expected a 2-D array, got shape %v", npy.Shape)
	}
	data, err := npy.GetUint8()
	if err != nil {
		return nil, err
	}
	numMarkers, numSamples := npy.Shape[0], npy.Shape[1]
	if numSamples != len(sampleIDs) {
		return nil, fmt.Errorf("numpy target: array has %d samples, sampleIDs has %d", numSamples, len(sampleIDs))
	}
	target := phasor.NewTargetMatrix(numMarkers, sampleIDs)
	for m := 0; m < numMarkers; m++ {
		for k := 0; k < numSamples; k++ {
			target.Set(m, k, data[m*numSamples+k])
		}
	}
	return target, nil
}

// WriteNumpyQuality writes per-marker quality scores as a float64 .npy
// vector, typed markers first-class alongside untyped ones.
func WriteNumpyQuality(w io.Writer, quality []phasor.SNPQuality) error {
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return err
	}
	npw.Shape = []int{len(quality)}
	scores := make([]float64, len(quality))
	for i, q := range quality {
		scores[i] = q.Score
	}
	return npw.WriteFloat64(scores)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
