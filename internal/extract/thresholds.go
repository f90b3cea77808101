package extract

// Thresholds names the geometry multipliers used by line reconstruction and
// spatial label anchoring. The values were empirically tuned for Korean
// business registration certificates and bankbook scans and are exposed as
// configuration rather than inline constants to ease future tuning.
type Thresholds struct {
	// ReconstructToleranceRatio scales the average word height into the
	// vertical window used when grouping words into lines.
	ReconstructToleranceRatio float64

	// LineBandRatio scales a word's height into the vertical window used
	// when collecting value words on the same line as a label anchor.
	LineBandRatio float64

	// AnchorBandRatio scales a word's height into the vertical window used
	// when absorbing neighboring tokens during label anchoring.
	AnchorBandRatio float64

	// AbsorbGapRatio scales a word's height into the maximum horizontal gap
	// allowed when absorbing neighboring tokens during label anchoring.
	AbsorbGapRatio float64

	// WordJoinGapRatio scales a word's height into the minimum horizontal
	// gap that separates two collected value words with a space. Smaller
	// gaps are treated as one run-on word split by the OCR tokenizer.
	WordJoinGapRatio float64
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReconstructToleranceRatio: 0.4,
		LineBandRatio:             0.5,
		AnchorBandRatio:           0.6,
		AbsorbGapRatio:            5.0,
		WordJoinGapRatio:          0.7,
	}
}
