// Command expandofmt is a debug tool for the goexpando format-string
// engine: parse a format string and dump its serialised tree, or
// render it against a canned mail-index sample object.
//
// Grounded on the cobra root/subcommand layout in
// 5b002491_steveyegge-beads__cmd-bd-list.go.go: a package-level
// *cobra.Command per subcommand, flags registered in init(), values
// pulled back out of cmd.Flags() inside Run.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	goexpando "github.com/neomutt/goexpando"
	"github.com/neomutt/goexpando/maildomain"
)

var rootCmd = &cobra.Command{
	Use:   "expandofmt",
	Short: "Inspect and render goexpando format strings",
}

var parseCmd = &cobra.Command{
	Use:   "parse <format>",
	Short: "Parse a format string and print its serialised tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := goexpando.Parse(args[0], maildomain.Definitions())
		if err != nil {
			return err
		}
		fmt.Println(goexpando.Serialize(tree))
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <format>",
	Short: "Render a format string against a sample mail-index row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, err := cmd.Flags().GetInt("col")
		if err != nil {
			return err
		}

		tree, err := goexpando.Parse(args[0], maildomain.Definitions())
		if err != nil {
			return err
		}

		var b goexpando.Appender
		goexpando.Render(tree, sampleRenderData(), cols, &b)
		fmt.Println(b.String())
		return nil
	},
}

func init() {
	renderCmd.Flags().Int("col", 80, "render width in screen columns")
	rootCmd.AddCommand(parseCmd, renderCmd)
}

func sampleRenderData() *goexpando.RenderData {
	msg := &maildomain.Message{
		Subject:      "Re: quarterly numbers",
		From:         "Alice Example",
		To:           "bob@example.com",
		DateSent:     time.Date(2026, time.July, 29, 14, 30, 0, 0, time.Local),
		DateReceived: time.Date(2026, time.July, 29, 14, 31, 0, 0, time.Local),
		Size:         4096,
		Unread:       true,
		Attachments:  2,
		TreePrefix:   "",
	}
	return maildomain.RenderData(msg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
