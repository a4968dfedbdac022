package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lels/internal/types"
)

// TypeNode is one node of the type tree.
type TypeNode struct {
	Name     string     `json:"name"`
	Subtypes []TypeNode `json:"subtypes,omitempty"`
}

// TypesResult holds the type tree and, when the hierarchy was rejected,
// the reason.
type TypesResult struct {
	Tree    TypeNode `json:"tree"`
	Ignored string   `json:"hierarchy_ignored,omitempty"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types <file>",
		Short: "Print the type tree of a document",
		Long: `Print the type tree built from the document's type hierarchy,
extended with every type its templates mention.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTypes(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	p, err := loadPass(opts, path)
	if err != nil {
		return loadFailure(formatter, err)
	}

	result := TypesResult{Tree: typeNode(p.Tree, types.Root)}
	if p.HierarchyErr != nil {
		result.Ignored = p.HierarchyErr.Error()
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	if result.Ignored != "" {
		fmt.Fprintf(w, "Type hierarchy ignored: %s\n\n", result.Ignored)
	}
	fmt.Fprint(w, p.Tree.String())
	return nil
}

func typeNode(tree *types.Tree, id types.ID) TypeNode {
	n := TypeNode{Name: tree.Name(id)}
	for _, c := range tree.Subtypes(id) {
		n.Subtypes = append(n.Subtypes, typeNode(tree, c))
	}
	return n
}
