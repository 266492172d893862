package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/xdccfind/xdccfind/internal/config"
	"github.com/xdccfind/xdccfind/internal/finder"
	"github.com/xdccfind/xdccfind/internal/search"
)

func renderResult(w io.Writer, result *search.Result, format string) error {
	switch format {
	case config.OutputJSON:
		return writeJSON(w, result)
	case config.OutputYAML:
		return writeYAML(w, result)
	case config.OutputPlain:
		return writePlain(w, result.Entries, shouldColorize(w))
	default:
		return writeEntryTable(w, result.Entries)
	}
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeEntryTable(w io.Writer, entries []finder.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No packages found.")
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.PackageNumber), e.BotName, e.Name, e.Size})
	}
	_, err := fmt.Fprintln(w, renderTable(entryColumns, rows))
	return err
}

// writePlain prints one entry per line followed by the IRC command that
// requests the package.
func writePlain(w io.Writer, entries []finder.Entry, colorize bool) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, formatEntry(e, colorize)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  /msg %s xdcc send #%d\n", e.BotName, e.PackageNumber); err != nil {
			return err
		}
	}
	return nil
}

// formatEntry renders an entry like Entry.String, optionally with the bot
// name highlighted.
func formatEntry(e finder.Entry, colorize bool) string {
	if !colorize {
		return e.String()
	}
	return fmt.Sprintf("%s [%s] (%s)", e.Name, text.FgYellow.Sprint(e.BotName), e.Size)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
