package gen

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// Plan summarises what a Spec will generate.
type Plan struct {
	Spec *Spec
}

func (p *Plan) String() string {
	sb := new(strings.Builder)
	p.PrintPlan(sb)
	return sb.String()
}

func (p *Plan) PrintPlan(w io.Writer) {
	tw := tabwriter.NewWriter(w, 25, 4, 2, ' ', 0)
	if p.Spec.Title != "" {
		fmt.Fprintf(tw, "Title\t%s\n", p.Spec.Title)
	}
	if p.Spec.Seed != nil {
		fmt.Fprintf(tw, "Seed\t%d\n", *p.Spec.Seed)
	} else {
		fmt.Fprintf(tw, "Seed\t%s\n", "random")
	}
	fmt.Fprintf(tw, "Sets\t%d\n", len(p.Spec.Sets))
	fmt.Fprintf(tw, "Total values\t%s\n", humanize.Comma(int64(p.Spec.TotalCount())))
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOUNT\tDISTRIBUTION")
	for i := range p.Spec.Sets {
		set := &p.Spec.Sets[i]
		fmt.Fprintf(tw, "%s\t%d\t%s\n", set.Name, set.Count, set)
	}
	_ = tw.Flush()
}
