package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// TableTitle heads the Markdown catalog.
const TableTitle = "# Hypothesis-Powered Repositories"

const hostingBaseURL = "https://github.com/"

// MarkdownTable renders the catalog as a titled Markdown table in catalog order.
func MarkdownTable(catalog m.Catalog) string {
	var buf bytes.Buffer

	buf.WriteString(TableTitle + "\n\n")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Repository", "⭐ Stars", "🧪 Property-Based Tests"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, entry := range catalog.Repos {
		table.Append([]string{
			repositoryCell(entry),
			strconv.Itoa(entry.Stars),
			strconv.Itoa(entry.PropertyTestCount),
		})
	}

	table.Render()

	return buf.String()
}

func repositoryCell(entry m.CatalogEntry) string {
	link := fmt.Sprintf("[%s](%s%s)", entry.Name, hostingBaseURL, entry.Name)
	if entry.Img == "" {
		return link
	}

	return fmt.Sprintf(`<img src="%s" width="20" height="20"> &nbsp; %s`, entry.Img, link)
}
