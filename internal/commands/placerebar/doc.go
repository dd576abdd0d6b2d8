// Package placerebar implements manual rebar placement: pick a rebar type
// and bar counts, then create evenly spaced vertical and horizontal bars
// inside each selected structural element, inset by the SNI cover.
package placerebar

const docMarkdown = `# Place Rebar

Place rebar in structural elements according to SNI standards.

**How to use**

1. Select structural elements first (family instances, floors, basic walls)
2. Pick a rebar type
3. Enter vertical and horizontal bar counts, e.g. ` + "`3 5`" + ` or just ` + "`3`" + `

Bars are spaced evenly inside each element's bounding box, inset by the
40mm cover on every side. Elements without a bounding box are skipped and
counted as failures; the run always continues with the next element.
`
