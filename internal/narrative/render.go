package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"datastory/domain/insight"
)

// RenderDocument produces the markdown document for one audience from a
// read-only story. Rendering is a pure function: the same story and audience
// always yield byte-identical output.
func RenderDocument(story insight.Story, audience insight.Audience) string {
	switch audience {
	case insight.AudienceBusiness:
		return renderBusiness(story)
	case insight.AudienceGeneral:
		return renderGeneral(story)
	default:
		return renderTechnical(story)
	}
}

func renderTechnical(story insight.Story) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", story.Title)
	fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n", story.ExecutiveSummary)
	fmt.Fprintf(&b, "## Methodology\n\n%s\n\n", story.Methodology)
	b.WriteString("## Key Findings\n\n")

	for _, finding := range story.Main {
		fmt.Fprintf(&b, "### %d. %s\n\n", finding.Rank, finding.Title)
		fmt.Fprintf(&b, "**Category:** %s  \n**Significance:** %s\n\n", finding.Category.Label(), finding.Tier)
		fmt.Fprintf(&b, "%s\n\n", finding.Description)
		fmt.Fprintf(&b, "**Technical Details:** %s\n\n", finding.TechnicalDetail)
		fmt.Fprintf(&b, "**Evidence:**\n\n```json\n%s\n```\n\n", evidenceJSON(finding))
	}

	writeSupporting(&b, story)
	writeBullets(&b, "## Recommendations", story.Recommendations)
	writeBullets(&b, "## Limitations", story.Limitations)

	return b.String()
}

func renderBusiness(story insight.Story) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", strings.ReplaceAll(story.Title, ":", " -"))
	fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n", story.ExecutiveSummary)
	b.WriteString("## Key Findings\n\n")

	for _, finding := range story.Main {
		fmt.Fprintf(&b, "### %d. %s\n\n", finding.Rank, finding.Title)
		fmt.Fprintf(&b, "%s\n\n", finding.Description)
		fmt.Fprintf(&b, "**Business Impact:** %s\n\n", finding.BusinessImpact)
	}

	writeSupporting(&b, story)
	writeBullets(&b, "## Recommendations", story.Recommendations)

	considerations := story.Limitations
	if len(considerations) > 3 {
		considerations = considerations[:3]
	}
	writeBullets(&b, "## Considerations", considerations)

	return b.String()
}

func renderGeneral(story insight.Story) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", story.Title)
	fmt.Fprintf(&b, "## What We Discovered\n\n%s\n\n", simplify(story.ExecutiveSummary))
	b.WriteString("## Main Findings\n\n")

	for _, finding := range story.Main {
		fmt.Fprintf(&b, "### %d. %s\n\n", finding.Rank, finding.Title)
		fmt.Fprintf(&b, "%s\n\n", simplify(finding.Description))
		fmt.Fprintf(&b, "**Why This Matters:** %s\n\n", finding.PlainSummary)
	}

	writeSupporting(&b, story)

	b.WriteString("## What This Means\n\n")
	b.WriteString("The analysis shows that the classes can be reliably identified from their measurements. It demonstrates how careful statistics can reveal natural patterns and support accurate predictions.\n\n")

	writeBullets(&b, "## Next Steps", story.Recommendations)

	return b.String()
}

func writeSupporting(b *strings.Builder, story insight.Story) {
	if len(story.Supporting) == 0 {
		return
	}
	b.WriteString("## Supporting Insights\n\n")
	for _, ins := range story.Supporting {
		fmt.Fprintf(b, "- **%s**: %s\n", ins.Title, ins.Description)
	}
	b.WriteString("\n")
}

func writeBullets(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func evidenceJSON(finding insight.Insight) string {
	data, err := json.MarshalIndent(finding.Evidence, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// simplify swaps statistical jargon for everyday wording in the general
// audience document. Numbers pass through untouched so numeric facts stay
// identical across all three documents.
func simplify(text string) string {
	replacer := strings.NewReplacer(
		"correlation", "relationship",
		"coefficient", "measure",
		"predictive ranking", "usefulness ranking",
	)
	return replacer.Replace(text)
}
