package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	// a number starting with 0, preceded by a character that cannot be part
	// of a token or a string
	leadingZero         = regexp.MustCompile(`(^|[^0-9A-Za-z_".])(0[xX][0-9a-fA-F]+|0[0-9a-fA-F]*)`)
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// SanitizeProofJSON makes the toolchain's proof output valid JSON. Bare
// numbers with a leading zero, hexadecimal ones included, are quoted when
// they precede a comma or a closing bracket so they survive parsing
// unchanged. Numbers inside string literals are left alone. Trailing commas
// are removed.
func SanitizeProofJSON(s string) string {
	strs := stringLiterals(s)
	var sb strings.Builder
	last := 0
	for _, m := range leadingZero.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[4], m[5]
		if within(strs, start) {
			continue
		}
		rest := strings.TrimLeft(s[end:], " \t\r\n")
		if rest == "" || (rest[0] != ',' && rest[0] != ']') {
			continue
		}
		sb.WriteString(s[last:start])
		sb.WriteString(`"` + s[start:end] + `"`)
		last = end
	}
	sb.WriteString(s[last:])

	res := trailingCommaObject.ReplaceAllString(sb.String(), "}")
	return trailingCommaArray.ReplaceAllString(res, "]")
}

// stringLiterals returns the [start, end) spans of the string literals of s.
// An unterminated literal extends to the end of s.
func stringLiterals(s string) [][2]int {
	var spans [][2]int
	open := -1
	for i := 0; i < len(s); i++ {
		switch {
		case open < 0:
			if s[i] == '"' {
				open = i
			}
		case s[i] == '\\':
			i++
		case s[i] == '"':
			spans = append(spans, [2]int{open, i + 1})
			open = -1
		}
	}
	if open >= 0 {
		spans = append(spans, [2]int{open, len(s)})
	}
	return spans
}

func within(spans [][2]int, pos int) bool {
	for _, sp := range spans {
		if pos >= sp[0] && pos < sp[1] {
			return true
		}
	}
	return false
}

// Element is a proof or input value. It accepts JSON strings and numbers.
type Element string

func (e *Element) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Element(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("proof element %s: %w", data, err)
	}
	*e = Element(n.String())
	return nil
}

// Proof is a parsed proof artifact. Raw holds the whole artifact, with
// numbers kept as json.Number so that field elements survive unchanged.
type Proof struct {
	Proof struct {
		A []Element   `json:"a"`
		B [][]Element `json:"b"`
		C []Element   `json:"c"`
	} `json:"proof"`
	Inputs []Element      `json:"inputs"`
	Raw    map[string]any `json:"-"`
}

// ParseProof sanitizes and parses a proof artifact.
func ParseProof(data []byte) (*Proof, error) {
	clean := []byte(SanitizeProofJSON(string(data)))
	var p Proof
	if err := json.Unmarshal(clean, &p); err != nil {
		return nil, fmt.Errorf("parsing proof: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.UseNumber()
	if err := dec.Decode(&p.Raw); err != nil {
		return nil, fmt.Errorf("parsing proof: %w", err)
	}
	return &p, nil
}

// Elements flattens the proof in the order check_verify expects it.
func (p *Proof) Elements() ([ProofElements]string, error) {
	var res [ProofElements]string
	pr := p.Proof
	if len(pr.A) != 2 || len(pr.B) != 2 || len(pr.B[0]) != 2 || len(pr.B[1]) != 2 || len(pr.C) != 2 {
		return res, &FormatError{Rewrite: "decompose proof", Marker: "a[2], b[2][2], c[2]"}
	}
	flat := []Element{pr.A[0], pr.A[1], pr.B[0][0], pr.B[0][1], pr.B[1][0], pr.B[1][1], pr.C[0], pr.C[1]}
	for i, e := range flat {
		res[i] = string(e)
	}
	return res, nil
}

// PublicInputs returns the inputs recorded in the artifact.
func (p *Proof) PublicInputs() []string {
	res := make([]string, len(p.Inputs))
	for i, e := range p.Inputs {
		res[i] = string(e)
	}
	return res
}
