package cmd

import (
	"bufio"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/pkg/paths"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	var (
		dir    string
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs [component]",
		Short: "Show the newest log file of a component",
		Long: `Show the newest log file of a component (default: praise-server).

Examples:
  praise logs
  praise logs praise-cli --tail 100
  praise logs -f`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			component := "praise-server"
			if len(args) == 1 {
				component = args[0]
			}
			if dir == "" {
				dir = paths.LogDir()
			}

			file, err := latestLogFile(dir, component)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printTail(out, file, lines); err != nil {
				return err
			}
			if !follow {
				return nil
			}
			return followFile(cmd, out, file)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Log directory (default: the praise state directory)")
	cmd.Flags().IntVarP(&lines, "tail", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	return cmd
}

// latestLogFile picks the newest <component>-<date>.log in dir. Dates sort
// lexically.
func latestLogFile(dir, component string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, component+"-*.log"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("no log files for %s in %s", component, dir)).
			WithDetail("dir", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func printTail(w io.Writer, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var ring []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring = append(ring, scanner.Text())
		if n > 0 && len(ring) > n {
			ring = ring[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(ring) > 0 {
		fmt.Fprintln(w, strings.Join(ring, "\n"))
	}
	return nil
}

func followFile(cmd *cobra.Command, w io.Writer, path string) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()

	ctx := cmd.Context()
	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(w, line.Text)
		case <-ctx.Done():
			return t.Stop()
		}
	}
}
