// Package encode writes generated sample sets in the formats accepted by the
// variates command.
package encode

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"github.com/strata-av/variates/pkg/data/gen"
	"gopkg.in/yaml.v3"
)

// Encoder writes results to w.
type Encoder interface {
	Encode(w io.Writer, results []gen.Result) error
}

const (
	FormatPlain        = "plain"
	FormatCSV          = "csv"
	FormatJSON         = "json"
	FormatYAML         = "yaml"
	FormatLineProtocol = "lp"
)

// Formats lists the names accepted by NewEncoder.
func Formats() []string {
	return []string{FormatPlain, FormatCSV, FormatJSON, FormatYAML, FormatLineProtocol}
}

// NewEncoder returns the encoder for format. ts stamps values written as
// line protocol and is ignored by the other formats.
func NewEncoder(format string, ts gen.TimeSequenceSpec) (Encoder, error) {
	switch strings.ToLower(format) {
	case FormatPlain, "":
		return Plain{}, nil
	case FormatCSV:
		return CSV{}, nil
	case FormatJSON:
		return JSON{}, nil
	case FormatYAML, "yml":
		return YAML{}, nil
	case FormatLineProtocol, "line-protocol":
		return &LineProtocol{Time: ts}, nil
	}
	return nil, errors2.Invalidf("encode.NewEncoder", "unknown format %q; expected one of %s",
		format, strings.Join(Formats(), ", "))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Plain writes one value per line. When more than one set is written, each
// set is introduced by a comment line naming it.
type Plain struct{}

func (Plain) Encode(w io.Writer, results []gen.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if len(results) > 1 {
			bw.WriteString("# ")
			bw.WriteString(r.Set.Name)
			bw.WriteString(" (")
			bw.WriteString(r.Set.String())
			bw.WriteString(")\n")
		}
		for _, v := range r.Values {
			bw.WriteString(formatValue(v))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// CSV writes a set,index,value header followed by one record per value.
type CSV struct{}

func (CSV) Encode(w io.Writer, results []gen.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"set", "index", "value"}); err != nil {
		return err
	}
	for _, r := range results {
		for i, v := range r.Values {
			if err := cw.Write([]string{r.Set.Name, strconv.Itoa(i), formatValue(v)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

type document struct {
	Name         string             `json:"name" yaml:"name"`
	Distribution string             `json:"distribution" yaml:"distribution"`
	Seed         uint64             `json:"seed" yaml:"seed"`
	Params       map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
	Values       []float64          `json:"values" yaml:"values,flow"`
}

func documents(results []gen.Result) []document {
	docs := make([]document, len(results))
	for i, r := range results {
		values := r.Values
		if values == nil {
			values = []float64{}
		}
		docs[i] = document{
			Name:         r.Set.Name,
			Distribution: strings.ToLower(r.Set.Distribution),
			Seed:         r.Seed,
			Params:       r.Set.Params,
			Values:       values,
		}
	}
	return docs
}

// JSON writes an array with one object per set.
type JSON struct{}

func (JSON) Encode(w io.Writer, results []gen.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(documents(results))
}

// YAML writes a sequence with one mapping per set.
type YAML struct{}

func (YAML) Encode(w io.Writer, results []gen.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(documents(results)); err != nil {
		return err
	}
	return enc.Close()
}
