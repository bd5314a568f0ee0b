package client

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7d8590"))
	verdictStyle = map[libssk.Verdict]lipgloss.Style{
		libssk.VerdictMustTry:     lipgloss.NewStyle().Foreground(lipgloss.Color("#2da44e")),
		libssk.VerdictRecommended: lipgloss.NewStyle().Foreground(lipgloss.Color("#0969da")),
		libssk.VerdictOkay:        lipgloss.NewStyle().Foreground(lipgloss.Color("#9a6700")),
		libssk.VerdictAvoid:       lipgloss.NewStyle().Foreground(lipgloss.Color("#cf222e")),
	}
)

var verdictMarks = map[libssk.Verdict]string{
	libssk.VerdictMustTry:     "★★★",
	libssk.VerdictRecommended: "★★",
	libssk.VerdictOkay:        "★",
	libssk.VerdictAvoid:       "✗",
}

// RenderHits writes one block per hit, numbered from offset+1.
func RenderHits(w io.Writer, offset int, hits []libssk.Hit) {
	for i, hit := range hits {
		verdict := libssk.Verdict(hit.Verdict)

		fmt.Fprintf(w, "%3d. %s  %s  %s\n",
			offset+i+1,
			nameStyle.Render(hit.Name),
			libssk.PriceTier(hit.Price).Label(),
			verdictStyle[verdict].Render(verdictMarks[verdict]+" "+string(verdict)),
		)

		details := slices.Clone(hit.Categories)
		for _, tag := range hit.Tags {
			details = append(details, "#"+tag)
		}
		for _, line := range []string{strings.Join(details, " "), hit.Address, hit.CoverImage} {
			if line != "" {
				fmt.Fprintf(w, "     %s\n", detailStyle.Render(line))
			}
		}
	}
}

// RenderLists writes the lists as a table.
func RenderLists(w io.Writer, lists []libssk.List) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVISIBILITY\tOWNER")
	for _, l := range lists {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Visibility, l.User.Name)
	}
	return tw.Flush()
}

// RenderCategories writes the categories as a table.
func RenderCategories(w io.Writer, categories []libssk.Category) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

// RenderFood writes a food detail.
func RenderFood(w io.Writer, food *libssk.Food) {
	names := make([]string, len(food.Categories))
	for i, c := range food.Categories {
		names[i] = c.Name
	}

	fmt.Fprintf(w, "%s (%s)\n", nameStyle.Render(food.Name), food.ID)
	fmt.Fprintf(w, "  %s  %s\n", food.Price.Label(), verdictStyle[food.Verdict].Render(verdictMarks[food.Verdict]+" "+string(food.Verdict)))
	fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
	if len(food.Tags) > 0 {
		fmt.Fprintf(w, "  #%s\n", strings.Join(food.Tags, " #"))
	}
	fmt.Fprintf(w, "  %s\n", food.Address)
	for _, image := range food.Images {
		fmt.Fprintf(w, "  %s\n", image)
	}
}
