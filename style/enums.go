package style

//go:generate go tool go-enum --marshal --names --nocase

// Horizontal alignment of element content. AlignUnset means no value.
// ENUM(unset, left, center, right, justify)
type Align int

// Page break policy. PageBreakNone is the default.
// ENUM(none, before, after, avoid)
type PageBreak int
