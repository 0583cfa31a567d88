// Command lrxrun inspects and converts compiled table set files and runs
// their scanner over sample input.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkrotov/lrx/scanner"
	"github.com/mkrotov/lrx/tables"
)

func main() {
	var cmdRoot = &cobra.Command{
		Use:   "lrxrun",
		Short: "table set utility",
		Long:  `Validate, convert, and exercise compiled scanner/parser table sets`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFlags(0)
		},
	}
	cmdRoot.AddCommand(cmdCheck())
	cmdRoot.AddCommand(cmdTokens())
	cmdRoot.AddCommand(cmdConvert())

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadTables reads a table set file, picking the codec by extension:
// .json files are JSON, everything else is the binary format. Either reader
// validates the tables before returning them.
func loadTables(path string) (*tables.TableSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return tables.ReadJSON(f)
	}
	return tables.ReadBinary(f)
}

func cmdCheck() *cobra.Command {
	return &cobra.Command{
		Use:          "check <tables-file>",
		Short:        "load a table set file and validate it",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadTables(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok\n", args[0])
			fmt.Printf("  terminals:     %d\n", len(ts.Terms))
			fmt.Printf("  nonterminals:  %d\n", len(ts.Nonterms))
			fmt.Printf("  rules:         %d\n", len(ts.Rules))
			fmt.Printf("  dfas:          %d\n", len(ts.DFAs))
			fmt.Printf("  parser states: %d\n", ts.States)
			fmt.Printf("  value stacks:  %d\n", ts.Stacks)
			return nil
		},
	}
}

func cmdTokens() *cobra.Command {
	var dfa int
	cmd := &cobra.Command{
		Use:          "tokens <tables-file> [input-file]",
		Short:        "tokenize input (a file or stdin) and print the token stream",
		SilenceUsage: true,
		Args:         cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadTables(args[0])
			if err != nil {
				return err
			}

			input, sourceName := os.Stdin, "-"
			if len(args) > 1 {
				sourceName = args[1]
				input, err = os.Open(sourceName)
				if err != nil {
					return err
				}
				defer input.Close()
			}

			count := 0
			s := scanner.New(ts, sourceName, func(t *scanner.Token) error {
				count++
				fmt.Printf("%d:%d\t%s\t%q\n", t.Line(), t.Col(), ts.TermName(t.Term()), t.Text())
				return nil
			})
			s.SelectDFA(dfa)

			buff := make([]byte, 64*1024)
			for {
				n, rerr := input.Read(buff)
				if n > 0 {
					if e := s.Feed(buff[:n]); e != nil {
						return e
					}
				}
				if rerr == io.EOF {
					break
				}
				if rerr != nil {
					return rerr
				}
			}
			if err := s.Finish(); err != nil {
				return err
			}
			log.Printf("%d token(s)", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&dfa, "dfa", 0, "DFA to scan with")
	return cmd
}

func cmdConvert() *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:          "convert <tables-file>",
		Short:        "convert a table set file between JSON and binary",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFile == "" {
				return fmt.Errorf("error: --output is required")
			}
			ts, err := loadTables(args[0])
			if err != nil {
				return err
			}

			out, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(outputFile), ".json") {
				err = ts.WriteJSON(out)
			} else {
				err = ts.WriteBinary(out)
			}
			if err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "output file, format by extension")
	return cmd
}
