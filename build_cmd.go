package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"slidecomposer/composer"
	"slidecomposer/datasource"
	"slidecomposer/deck"
	"slidecomposer/i18n"
	"slidecomposer/plan"
)

var (
	buildOut    string
	buildWatch  bool
	buildTables string
)

var buildCmd = &cobra.Command{
	Use:   "build [plan.yaml]",
	Short: "Compose a deck from a plan file",
	Long: `Reads a YAML (or JSON) plan listing the slides of a deck and writes
the composed presentation. The output path is taken from --out, then from
the plan's output field, then from the plan's file name.

With --export-tables every table of the composed deck is also written to
an Excel workbook, one worksheet per table.

With --watch the deck is rebuilt whenever the plan or one of its table
sources changes, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output file")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when the plan or its sources change")
	buildCmd.Flags().StringVar(&buildTables, "export-tables", "", "Also write the deck's tables to this .xlsx file")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	p, err := buildDeck(path)
	if err != nil || !buildWatch {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchPlan(ctx, path, p)
}

// watchPlan rebuilds on every change. Failed rebuilds are reported and the
// watch goes on; the set of sources is refreshed after each good build.
func watchPlan(ctx context.Context, path string, p *plan.Plan) error {
	for {
		rebuilt := make(chan *plan.Plan, 1)
		watchCtx, cancel := context.WithCancel(ctx)
		err := plan.Watch(watchCtx, append([]string{path}, p.Sources()...), func(changed string) {
			appLog.Logf("changed: %s", changed)
			next, err := buildDeck(path)
			if err != nil {
				appLog.Printf("error: %v", err)
				return
			}
			select {
			case rebuilt <- next:
			default:
			}
			cancel()
		})
		cancel()
		if err != nil {
			return WrapOperationErrorf("watch %s", err, path)
		}
		select {
		case next := <-rebuilt:
			p = next
		default:
			return nil
		}
	}
}

func buildDeck(path string) (*plan.Plan, error) {
	p, err := plan.Load(path)
	if err != nil {
		return nil, WrapOperationError("load plan", err)
	}
	intents, err := p.Intents(cfg.Theme)
	if err != nil {
		return nil, WrapOperationErrorf("read plan %s", err, path)
	}

	c := composer.New(cfg.Theme)
	c.SetLogger(appLog.Log)
	if err := c.Compose(intents...); err != nil {
		return nil, WrapOperationError("compose deck", err)
	}
	props := p.Properties()
	if props.Creator == "" {
		props.Creator = cfg.Author
	}
	c.Deck().Properties = props

	out := buildOutput(path, p.Output)
	if err := c.Save(out); err != nil {
		return nil, WrapOperationError("save deck", err)
	}
	appLog.Print(i18n.T("progress.built", c.Deck().SlideCount(), out))

	if buildTables != "" {
		if err := exportTables(c.Deck(), buildTables); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func exportTables(d *deck.Deck, path string) error {
	sheets := datasource.DeckTables(d)
	if len(sheets) == 0 {
		appLog.Print(i18n.T("progress.no_tables"))
		return nil
	}
	if err := datasource.WriteWorkbook(path, sheets); err != nil {
		return WrapOperationErrorf("export tables to %s", err, path)
	}
	appLog.Print(i18n.T("progress.exported", len(sheets), path))
	return nil
}

// buildOutput picks the deck path. A relative output in the plan is taken
// from the plan's directory.
func buildOutput(planPath, planOutput string) string {
	switch {
	case buildOut != "":
		return buildOut
	case planOutput != "" && filepath.IsAbs(planOutput):
		return planOutput
	case planOutput != "":
		return filepath.Join(filepath.Dir(planPath), planOutput)
	}
	return strings.TrimSuffix(planPath, filepath.Ext(planPath)) + ".pptx"
}
