package encode

import (
	"bufio"
	"io"
	"strings"
	"time"

	protocol "github.com/influxdata/line-protocol"
	"github.com/strata-av/variates/pkg/data/gen"
)

// DefaultMeasurement is the measurement name used when LineProtocol.Measurement is empty.
const DefaultMeasurement = "variates"

// LineProtocol writes every value as an InfluxDB line protocol point:
//
//	variates,distribution=normal,set=altitude value=0.25 1767225600000000000
//
// Value i of every set is stamped Time.Timestamp(i).
type LineProtocol struct {
	Measurement string
	Time        gen.TimeSequenceSpec

	// Precision truncates timestamps. Zero writes nanoseconds.
	Precision time.Duration
}

func (e *LineProtocol) Encode(w io.Writer, results []gen.Result) error {
	bw := bufio.NewWriter(w)
	enc := protocol.NewEncoder(bw)
	enc.FailOnFieldErr(true)
	if e.Precision > 0 {
		enc.SetPrecision(e.Precision)
	}

	name := e.Measurement
	if name == "" {
		name = DefaultMeasurement
	}

	for _, r := range results {
		p := point{
			name: name,
			// keys are kept in lexical order
			tags: []*protocol.Tag{
				{Key: "distribution", Value: strings.ToLower(r.Set.Distribution)},
				{Key: "set", Value: r.Set.Name},
			},
			fields: []*protocol.Field{{Key: "value"}},
		}
		for i, v := range r.Values {
			p.fields[0].Value = v
			p.ts = e.Time.Timestamp(i)
			if _, err := enc.Encode(&p); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// point is a reusable protocol.Metric.
type point struct {
	name   string
	tags   []*protocol.Tag
	fields []*protocol.Field
	ts     time.Time
}

func (p *point) Time() time.Time { return p.ts }
func (p *point) Name() string { return p.name }
func (p *point) TagList() []*protocol.Tag { return p.tags }
func (p *point) FieldList() []*protocol.Field { return p.fields }
