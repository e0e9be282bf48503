package help

// guideMarkdown is the concepts half of the help overlay, rendered
// through glamour and cached per style and width.
const guideMarkdown = `## Concepts

**Fragments** are self-contained pieces of the demo form. Mounting one
registers its subtree with the session registry; unmounting detaches it
again. Every fragment except ` + "`account`" + ` nests under a parent path, so
mount order is visible in the event log.

**Paths** address nodes with dots: ` + "`account.profile.display_name`" + `.
The go-to-path prompt accepts any registered path and suggests close
matches when a lookup misses.

**Events** record each successful registration in order. The log is
append-only: unmounting removes the subtree but never rewrites history.

Mounting a fragment before its parent parks it; it attaches itself the
moment the parent path appears.`
