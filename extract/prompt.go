package extract

import (
	"fmt"
	"strings"

	"github.com/fwojciec/scout"
)

const instructions = `Extract facts about the company that owns the website below.

Return a single JSON object with exactly these keys:
{
  "company_name": string or null,
  "website": string or null,
  "email": string or null,
  "phone": string or null,
  "address": string or null,
  "description": string or null,
  "category": string or null,
  "industry": string or null
}

Rules:
- Use only information stated in the pages. Do not invent data.
- If a field is not found, set it to null.
- "description" is a one or two sentence summary of what the company does.
- "category" is a short label for the kind of business, "industry" its sector.
- Reply with the JSON object only, without markdown or commentary.`

// BuildPrompt renders the extraction prompt for bundle: fixed instructions
// followed by one <page> section per page in bundle order.
func BuildPrompt(bundle *scout.PageBundle) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n<pages>\n")
	for _, p := range bundle.Pages {
		fmt.Fprintf(&sb, "<page url=%q>\n", p.URL)
		if p.Title != "" {
			fmt.Fprintf(&sb, "<title>%s</title>\n", p.Title)
		}
		sb.WriteString(p.Text)
		sb.WriteString("\n</page>\n")
	}
	sb.WriteString("</pages>")
	return sb.String()
}
