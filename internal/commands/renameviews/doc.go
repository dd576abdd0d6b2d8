// Package renameviews implements the view renaming command: select views,
// define a find/replace rule with prefix and suffix, and rename each view
// inside one transaction with automatic de-duplication on name conflicts.
package renameviews

const docMarkdown = `# Rename Views

Rename views using find/replace logic.

**How to use**

1. Select views (or pick them when nothing is selected)
2. Define the renaming rule: prefix, find, replace, suffix
3. Each view is renamed to ` + "`prefix + name.replace(find, replace) + suffix`" + `

Names that collide with an existing view get a ` + "`*`" + ` appended until
the name is unique (up to 20 attempts). Views that still collide after
that are reported as failures.

An empty *Find* leaves the name unchanged before prefix and suffix apply.
`
