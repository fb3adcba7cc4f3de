package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flightprice/backend/internal/domain"
	"github.com/flightprice/backend/internal/ml"
	"github.com/flightprice/backend/pkg/utils"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		modelPath    string
		encodersPath string
		maxLabels    int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the stored coefficients and vocabularies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if modelPath == "" {
				modelPath = cfg.Artifacts.ModelPath
			}
			if encodersPath == "" {
				encodersPath = cfg.Artifacts.EncodersPath
			}

			bundle, err := ml.LoadBundle(modelPath, encodersPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printCoefficients(out, bundle.Model())
			fmt.Fprintln(out)
			printVocabularies(out, bundle, maxLabels)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Model artifact path (default from config)")
	cmd.Flags().StringVar(&encodersPath, "encoders", "", "Encoders artifact path (default from config)")
	cmd.Flags().IntVar(&maxLabels, "max-labels", 8, "Labels listed per field, 0 for all")

	return cmd
}

func printCoefficients(out io.Writer, model *ml.LinearModel) {
	rows := make([][]string, 0, len(model.Features)+1)
	for i, name := range model.Features {
		rows = append(rows, []string{strconv.Itoa(i), name, formatFloat(model.Coefficients[i])})
	}
	rows = append(rows, []string{"", "(intercept)", formatFloat(model.Intercept)})

	fmt.Fprintln(out, renderTable("Model", []string{"#", "Feature", "Coefficient"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight}))
}

func printVocabularies(out io.Writer, bundle *ml.Bundle, maxLabels int) {
	fields := domain.CategoricalFields()
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		labels := bundle.Vocabulary(field)
		rows = append(rows, []string{
			string(field),
			strconv.Itoa(len(labels)),
			fallbackLabel(bundle, field),
			summarizeLabels(labels, maxLabels),
		})
	}

	fmt.Fprintln(out, renderTable("Encoders", []string{"Field", "Labels", "Fallback", "Vocabulary"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}))
}

// fallbackLabel is the label unseen values of field are priced as
func fallbackLabel(bundle *ml.Bundle, field domain.Field) string {
	enc, ok := bundle.Encoder(field)
	if !ok {
		return ""
	}
	label, err := enc.Inverse(0)
	if err != nil {
		return ""
	}
	return label
}

// summarizeLabels lists labels in code order, truncated after limit
func summarizeLabels(labels []string, limit int) string {
	if limit <= 0 || len(labels) <= limit {
		return strings.Join(labels, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(labels[:limit], ", "), len(labels)-limit)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(utils.RoundTo(v, 4), 'f', -1, 64)
}
