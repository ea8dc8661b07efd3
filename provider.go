package phasor

// GenotypeProvider is the external collaborator that delivers the
// target matrix X. Implementations must expose sample identifiers in a
// stable order matching At's sample index.
type GenotypeProvider interface {
	SampleIDs() []string
	NumMarkers() int
	At(marker, sample int) (dosage uint8, missing bool)
}

// ReferenceProvider is the external collaborator that delivers the
// reference panel H. Implementations must guarantee marker-row
// alignment with the GenotypeProvider by position.
type ReferenceProvider interface {
	NumHaplotypes() int
	NumMarkers() int
	At(marker, haplotype int) uint8
}

// PhasedSink is the external collaborator that receives the phasing
// result, one mosaic pair per individual.
type PhasedSink interface {
	PutMosaic(sampleIdx int, pair HaplotypeMosaicPair) error
}

// LoadReferencePanel materializes a ReferenceProvider into a dense
// in-memory ReferencePanel.
func LoadReferencePanel(rp ReferenceProvider) *ReferencePanel {
	p := NewReferencePanel(rp.NumMarkers(), rp.NumHaplotypes())
	for m := 0; m < p.NumMarkers; m++ {
		for h := 0; h < p.NumHaplotypes; h++ {
			p.Set(m, h, rp.At(m, h))
		}
	}
	return p
}

// LoadTargetMatrix materializes a GenotypeProvider into a dense
// in-memory TargetMatrix.
func LoadTargetMatrix(gp GenotypeProvider) *TargetMatrix {
	t := NewTargetMatrix(gp.NumMarkers(), gp.SampleIDs())
	for m := 0; m < t.NumMarkers; m++ {
		for s := 0; s < t.NumSamples; s++ {
			dosage, missing := gp.At(m, s)
			if missing {
				t.Set(m, s, Missing)
			} else {
				t.Set(m, s, dosage)
			}
		}
	}
	return t
}
