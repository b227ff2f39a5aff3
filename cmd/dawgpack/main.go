// Command dawgpack builds a packed dictionary from word-list files and
// answers membership queries against one.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milden6/dawgpack"
)

var rootCmd = &cobra.Command{
	Use:   "dawgpack",
	Short: "build and query packed directed acyclic word graphs",
}

var buildCmd = &cobra.Command{
	Use:   "build [word-list files...]",
	Short: "build a packed dictionary from one or more word-list files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

var queryCmd = &cobra.Command{
	Use:   "query <packed-file> [words...]",
	Short: "check whether each word is present in a packed dictionary",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runQuery,
}

var buildOut string

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output file for the packed dictionary (required)")
	buildCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(queryCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer logger.Sync()

	b := dawg.NewBuilder(dawg.WithLogger(logger))
	for _, path := range args {
		if err := insertWordsFromFile(b, path); err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
	}

	packed := b.Pack()

	if err := os.WriteFile(buildOut, []byte(packed), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", buildOut)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "packed %s (%d bytes)\n", buildOut, len(packed))
	return nil
}

func insertWordsFromFile(b *dawg.Builder, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "" {
			continue
		}
		if err := b.Insert(word); err != nil {
			return errors.Wrapf(err, "word %q", word)
		}
	}
	return scanner.Err()
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]
	words := args[1:]

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	u, err := dawg.NewUnpacker(string(data))
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	out := cmd.OutOrStdout()
	for _, w := range words {
		ok, err := u.IsWord(w)
		if err != nil {
			return errors.Wrapf(err, "word %q", w)
		}
		fmt.Fprintf(out, "%s\t%t\n", w, ok)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
