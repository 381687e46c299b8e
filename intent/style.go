package intent

// Tone values.
const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneAcademic     = "academic"
)

// Structure values.
const (
	StructureParagraph = "paragraph"
	StructureTable     = "table"
	StructureBullet    = "bullet"
)

// DepthDetailed is the only depth currently produced; the field is kept
// enumerable so future logic can vary it.
const DepthDetailed = "detailed"

// Style holds the tone/structure/depth directives embedded into the
// LLM instruction.
type Style struct {
	Tone      string `json:"tone"`
	Structure string `json:"structure"`
	Depth     string `json:"depth"`
}

// SelectStyle maps intent scores and the document's research flag to
// response-style directives. The comparison check takes priority over
// the summary check.
func SelectStyle(s Scores, isResearch bool) Style {
	style := Style{
		Tone:      ToneProfessional,
		Structure: StructureParagraph,
		Depth:     DepthDetailed,
	}

	if s.CasualChat > 0.5 {
		style.Tone = ToneFriendly
	} else if s.TechnicalDetail > 0.6 && isResearch {
		style.Tone = ToneAcademic
	}

	if s.Comparison > 0.4 {
		style.Structure = StructureTable
	} else if s.SummaryRequest > 0.5 {
		style.Structure = StructureBullet
	}

	return style
}
