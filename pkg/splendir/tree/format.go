package tree

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Chars holds the branch-drawing character set.
type Chars struct {
	Branch     string
	LastBranch string
	Vertical   string
	Horizontal string
}

// UnicodeChars returns the box-drawing character set.
func UnicodeChars() Chars {
	return Chars{
		Branch:     "├",
		LastBranch: "└",
		Vertical:   "│",
		Horizontal: "───",
	}
}

// ASCIIChars returns a 7-bit safe character set.
func ASCIIChars() Chars {
	return Chars{
		Branch:     "|",
		LastBranch: "`",
		Vertical:   "|",
		Horizontal: "---",
	}
}

// FormatOptions controls tree rendering.
type FormatOptions struct {
	// Colorize styles each name by its file type.
	Colorize bool

	// Unicode selects box-drawing branch characters; false uses ASCII.
	Unicode bool

	// ShowSizes appends a human-readable size to file entries.
	ShowSizes bool
}

// DefaultFormatOptions returns uncolored unicode rendering.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Unicode: true}
}

// Formatter renders a Node hierarchy as a branch diagram.
type Formatter struct {
	opts  FormatOptions
	chars Chars
}

// NewFormatter creates a formatter with the given options.
func NewFormatter(opts FormatOptions) *Formatter {
	chars := ASCIIChars()
	if opts.Unicode {
		chars = UnicodeChars()
	}
	return &Formatter{opts: opts, chars: chars}
}

// Format renders the tree rooted at node, root line first.
func (f *Formatter) Format(node *Node) string {
	var b strings.Builder
	b.WriteString(f.renderName(node))
	b.WriteByte('\n')
	f.formatChildren(&b, node, "")
	return b.String()
}

func (f *Formatter) formatChildren(b *strings.Builder, node *Node, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		connector := f.chars.Branch
		if last {
			connector = f.chars.LastBranch
		}

		fmt.Fprintf(b, "%s%s%s %s\n", prefix, connector, f.chars.Horizontal, f.renderName(child))

		if len(child.Children) > 0 {
			childPrefix := prefix + f.chars.Vertical + "   "
			if last {
				childPrefix = prefix + "    "
			}
			f.formatChildren(b, child, childPrefix)
		}
	}
}

func (f *Formatter) renderName(node *Node) string {
	name := node.Name

	if f.opts.Colorize {
		name = Classify(node.Name, node.IsDir).Style().Render(name)
	}
	if f.opts.ShowSizes && !node.IsDir {
		name = fmt.Sprintf("%s (%s)", name, humanize.IBytes(uint64(node.Size)))
	}
	if node.Err != nil {
		name = fmt.Sprintf("%s [%s]", name, node.Err.Kind)
	}
	return name
}
