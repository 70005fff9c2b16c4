package cpm

// LayoutKind describes how a layout's templates expose sample blocks.
type LayoutKind int

const (
	// SampleBlockCombined is a single template whose type slot tells
	// inputs from outputs.
	SampleBlockCombined LayoutKind = iota

	// SampleBlockSplit uses separate input and output templates.
	SampleBlockSplit
)

// String returns the kind name used in logs.
func (k LayoutKind) String() string {
	switch k {
	case SampleBlockCombined:
		return "combined"
	case SampleBlockSplit:
		return "split"
	}
	return "unknown"
}

// Pairing selects how inputs and outputs of a layout become sample cases.
type Pairing int

const (
	// PairPositional zips blocks in encounter order (see PairByPosition).
	PairPositional Pairing = iota

	// PairKeyed matches blocks by their sample id (see PairByID).
	PairKeyed
)

// Language identifies the natural language of a layout template.
type Language string

// Languages used by judge pages.
const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
	LanguageRussian  Language = "ru"
)

// LayoutInfo describes one template of a layout generation.
type LayoutInfo struct {
	Site       Site
	Language   Language
	Generation string
	Kind       LayoutKind
}
