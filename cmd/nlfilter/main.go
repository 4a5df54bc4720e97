// Command nlfilter validates, inspects, and test-evaluates netlink
// filter expressions from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/expr"
	"github.com/lytics/nlfilter/filter"
	"github.com/lytics/nlfilter/vm"
)

var rootCmd = &cobra.Command{
	Use:           "nlfilter",
	Short:         "netlink event filter expression tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate EXPR",
	Short: "check an expression for syntax errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp := expr.Parse(args[0])
		if !exp.Valid {
			return fmt.Errorf("%v", exp.Err)
		}
		fmt.Println("valid:", exp.Root.String())
		return nil
	},
}

var disasmCmd = &cobra.Command{
	Use:   "disasm EXPR",
	Short: "compile an expression and print its bytecode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filter.Compile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(f.Disassemble())
		return nil
	},
}

var profileEval bool

var evalCmd = &cobra.Command{
	Use:   "eval EXPR EVENT.json",
	Short: "evaluate an expression against a JSON event record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filter.Compile(args[0])
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		var ev event.NetworkEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("parse event %s: %w", args[1], err)
		}

		ctx := vm.NewContext()
		matched, elapsed := f.MatchesProfiled(&ev, ctx)
		fmt.Println(matched)
		if profileEval {
			fmt.Fprintf(os.Stderr, "evaluated in %dns\n", elapsed)
		}
		if !matched {
			os.Exit(1)
		}
		return nil
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "list the field catalog",
	Run: func(cmd *cobra.Command, args []string) {
		names := event.FieldNames()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	evalCmd.Flags().BoolVar(&profileEval, "profile", false, "print evaluation time to stderr")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
