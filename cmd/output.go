package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"sales_manager/internal/sales"

	"gopkg.in/yaml.v3"
)

// listing is the document written by the json and yaml outputs.
type listing struct {
	Results  []sales.Sale  `json:"results" yaml:"results"`
	Metadata sales.Summary `json:"metadata" yaml:"metadata"`
}

func writeSales(w io.Writer, format string, list []sales.Sale) error {
	if list == nil {
		list = []sales.Sale{}
	}
	doc := listing{Results: list, Metadata: sales.Summarize(list)}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tVALOR")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, sales.FormatBRL(s.Value))
	}
	fmt.Fprintf(tw, "\tTOTAL (%d)\t%s\n", doc.Metadata.Quantity, sales.FormatBRL(doc.Metadata.TotalAmount))
	return tw.Flush()
}

// describeError turns store errors into the messages shown to the user.
func describeError(err error) error {
	switch {
	case errors.Is(err, sales.ErrValidation):
		return fmt.Errorf("por favor, preencha todos os campos corretamente (%w)", err)
	case errors.Is(err, sales.ErrNotFound):
		return fmt.Errorf("venda não encontrada: %w", err)
	}
	return fmt.Errorf("ocorreu um erro ao salvar a venda: %w", err)
}
