// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Existence is the tri-state outcome of a remote DOI existence probe.
type Existence int

const (
	// ExistenceUnknown means the probe was inconclusive or never issued.
	ExistenceUnknown Existence = iota
	ExistenceTrue
	ExistenceFalse
)

// ExistenceOf converts a definitive answer to an Existence.
func ExistenceOf(exists bool) Existence {
	if exists {
		return ExistenceTrue
	}
	return ExistenceFalse
}

func (e Existence) String() string {
	switch e {
	case ExistenceTrue:
		return "true"
	case ExistenceFalse:
		return "false"
	default:
		return "unknown"
	}
}

// Bool returns a pointer to the definitive answer, or nil when unknown.
// Reports serialize nil as null.
func (e Existence) Bool() *bool {
	switch e {
	case ExistenceTrue:
		v := true
		return &v
	case ExistenceFalse:
		v := false
		return &v
	default:
		return nil
	}
}

// IdentifierStatus describes one DOI found in a paper.
type IdentifierStatus struct {
	// Valid reports whether doi.org knows the DOI. Nil when the remote check
	// was skipped or inconclusive.
	Valid *bool `json:"is_valid" yaml:"is_valid"`

	// Retracted reports whether the DOI is present in the retraction dataset.
	Retracted bool `json:"is_retracted" yaml:"is_retracted"`
}

// Zombie is one retraction dataset row matching a DOI cited by the paper.
// A DOI with several rows produces several zombies.
type Zombie struct {
	DOI       string `json:"doi" yaml:"doi"`
	Nature    string `json:"nature" yaml:"nature"`
	Date      string `json:"date" yaml:"date"`
	NoticeURL string `json:"notice_url" yaml:"notice_url"`
}

// Report is the outcome of checking one paper against a retraction dataset.
type Report struct {
	// Identifiers maps every distinct DOI found in the paper to its status.
	Identifiers map[string]IdentifierStatus `json:"identifiers" yaml:"identifiers"`

	// Zombies lists matching dataset rows sorted by DOI.
	Zombies []Zombie `json:"zombies" yaml:"zombies"`
}

// Retracted returns the distinct DOIs that appear in Zombies, in order.
func (r *Report) Retracted() []string {
	var out []string
	for i, z := range r.Zombies {
		if i > 0 && r.Zombies[i-1].DOI == z.DOI {
			continue
		}
		out = append(out, z.DOI)
	}
	return out
}
