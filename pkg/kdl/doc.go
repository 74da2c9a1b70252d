// Package kdl reads and writes KDL documents without losing formatting.
//
// Every piece of source text is owned by some element of the tree: the
// whitespace and comments before a node live in Node.Leading, the text
// between entries in Entry.Leading, the text before a children block in
// Node.BeforeChildren, the text before a closing brace (or at the end of the
// file) in Document.Trailing, and everything from the end of a node through
// its terminator in Node.Trailing. Writing a document back is plain
// concatenation, so a parsed document that is not modified serializes to
// exactly its source bytes, and editing one node never disturbs the text
// owned by its siblings.
//
// Slashdashed entries and children blocks are folded into the surrounding
// formatting text. Slashdashed nodes stay in the tree: their Leading text
// ends with the "/-" marker and Node.Commented reports them as inert. This
// is what makes soft deletion reversible.
package kdl
