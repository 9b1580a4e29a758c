package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/page"
)

func listSections(cmd *cobra.Command, args []string) error {
	doc, err := page.Load(cfg.Page)
	if err != nil {
		return err
	}

	anchors := make(map[string]bool)
	for _, id := range doc.Anchors() {
		anchors[id] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "LABEL", "HREF", "TARGET")
	for i, link := range doc.Nav {
		target := "missing"
		if id, ok := page.Fragment(link.Href); ok && anchors[id] {
			target = "ok"
		}
		k := ""
		if i < 9 {
			k = strconv.Itoa(i + 1)
		}
		t.Row(k, link.Label, link.Href, target)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}
