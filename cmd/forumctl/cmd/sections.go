package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"forum-server/db"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

var (
	description string
	order       int
)

func init() {
	RootCmd.AddCommand(sectionsCmd)
	RootCmd.AddCommand(subsectionsCmd)
	sectionsCmd.AddCommand(sectionsCreateCmd)
	sectionsCmd.AddCommand(sectionsListCmd)
	sectionsCmd.AddCommand(sectionsTreeCmd)
	subsectionsCmd.AddCommand(subsectionsCreateCmd)

	for _, c := range []*cobra.Command{sectionsCreateCmd, subsectionsCreateCmd} {
		c.Flags().StringVarP(&description, "description", "d", "", "Description shown under the title")
		c.Flags().IntVar(&order, "order", 0, "Position among its siblings")
	}
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Manage forum sections",
}

var subsectionsCmd = &cobra.Command{
	Use:   "subsections",
	Short: "Manage forum subsections",
}

var sectionsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a section",
	Args:  cobra.ExactArgs(1),
	Run:   createSection,
}

var sectionsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sections with their subsections",
	Args:    cobra.NoArgs,
	Run:     listSections,
}

var sectionsTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the forum layout as a tree",
	Args:  cobra.NoArgs,
	Run:   sectionsTree,
}

var subsectionsCreateCmd = &cobra.Command{
	Use:   "create <section-id> <title>",
	Short: "Create a subsection inside a section",
	Args:  cobra.ExactArgs(2),
	Run:   createSubsection,
}

func createSection(cmd *cobra.Command, args []string) {
	mustConnect()

	section, err := db.CreateSection(context.Background(), args[0], description, order)
	if err != nil {
		exitWithError("Error creating section: %v", err)
	}

	success("Created section %s (id %d)", section.Title, section.Id)
}

func createSubsection(cmd *cobra.Command, args []string) {
	sectionId, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError("Invalid section id: %s", args[0])
	}

	mustConnect()

	subsection, err := db.CreateSubsection(context.Background(), sectionId, args[1], description, order)
	if err != nil {
		exitWithError("Error creating subsection: %v", err)
	}

	success("Created subsection %s (id %d)", subsection.Title, subsection.Id)
}

func listSections(cmd *cobra.Command, args []string) {
	mustConnect()

	sections, err := db.ListSectionsWithSubsections(context.Background())
	if err != nil {
		exitWithError("Error listing sections: %v", err)
	}

	if len(sections) == 0 {
		fmt.Println("🤷‍♂️ No sections yet")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Section", "Subsection", "Id", "Description"})

	for _, s := range sections {
		table.Rich([]string{s.Title, "", strconv.FormatInt(s.Id, 10), s.Description}, []tablewriter.Colors{
			{tablewriter.FgHiWhiteColor, tablewriter.Bold},
		})
		for _, sub := range s.Subsections {
			table.Append([]string{"", sub.Title, strconv.FormatInt(sub.Id, 10), sub.Description})
		}
	}

	table.Render()
}

func sectionsTree(cmd *cobra.Command, args []string) {
	mustConnect()

	sections, err := db.ListSectionsWithSubsections(context.Background())
	if err != nil {
		exitWithError("Error listing sections: %v", err)
	}

	tree := treeprint.NewWithRoot(color.New(color.Bold, color.FgHiMagenta).Sprint("Forum"))
	for _, s := range sections {
		branch := tree.AddBranch(color.New(color.Bold, color.FgHiWhite).Sprintf("%s (#%d)", s.Title, s.Id))
		for _, sub := range s.Subsections {
			branch.AddNode(fmt.Sprintf("%s (#%d)", sub.Title, sub.Id))
		}
	}

	fmt.Println(tree.String())
}
