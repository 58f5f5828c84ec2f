package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"

	"fastcat.org/go/entab/entab"
	"fastcat.org/go/entab/rewrite"
)

type statsDoc struct {
	Strategy    rewrite.Strategy `yaml:"strategy"`
	Replaced    bool             `yaml:"replaced"`
	entab.Stats `yaml:",inline"`
}

func writeStats(w io.Writer, format statsFormat, res rewrite.Result) error {
	switch format {
	case statsFormatYAML:
		b, err := yaml.Marshal(statsDoc{res.Strategy, res.Replaced, res.Stats})
		if err != nil {
			return fmt.Errorf("encoding stats: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"Strategy", "Lines", "Bytes In", "Bytes Out", "Tabs", "Spaces Collapsed"})
		strategy := string(res.Strategy)
		if !res.Replaced {
			strategy += " (unchanged)"
		}
		st := res.Stats
		tw.AppendRow(table.Row{strategy, st.Lines, st.BytesIn, st.BytesOut, st.TabsEmitted, st.SpacesCollapsed})
		tw.Render()
		return nil
	}
}
