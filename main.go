package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/Nydauron/wcif-scorecards/generator"
	"github.com/Nydauron/wcif-scorecards/options"
	"github.com/Nydauron/wcif-scorecards/prompts"
	"github.com/Nydauron/wcif-scorecards/ui"
	"github.com/Nydauron/wcif-scorecards/wcif"
	"github.com/Nydauron/wcif-scorecards/writers"
)

const (
	competitionFlag = "competition"
	wcifFlag        = "wcif"
	outputFlag      = "output"
	presetFlag      = "options"
	savePresetFlag  = "save-options"
	noPromptFlag    = "no-prompt"
	plainFlag       = "plain"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func loadSession(competitionID, wcifPath string) (*generator.Session, error) {
	if wcifPath != "" {
		fmt.Fprintln(os.Stderr, "Local WCIF file detected")
		f, err := os.Open(wcifPath)
		if err != nil {
			return nil, fmt.Errorf("opening WCIF file: %w", err)
		}
		defer f.Close()
		return generator.LoadCompetitionWCIF(f)
	}
	if competitionID == "" {
		return nil, fmt.Errorf("either a competition id or a WCIF file must be provided")
	}
	fmt.Fprintf(os.Stderr, "Fetching WCIF for %s ...\n", competitionID)
	return generator.LoadCompetition(context.Background(), nil, wcif.DefaultBaseURL, competitionID)
}

func cliHandle(competitionID, wcifPath, outputDir, presetPath, savePresetPath string, noPrompt, plain bool) error {
	session, err := loadSession(competitionID, wcifPath)
	if err != nil {
		var fetchErr *wcif.FetchError
		if errors.As(err, &fetchErr) {
			fmt.Fprintf(os.Stderr, "Error occurred when trying to fetch the competition: %v\n", fetchErr)
			os.Exit(2)
			return nil
		}
		return err
	}

	summaries, err := session.EventSummaries()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s\n", session.Model.CompetitionName())
	for _, s := range summaries {
		fmt.Fprintf(os.Stderr, "  %-22s %d round(s), ~%d scorecards\n", s.Name, s.Rounds, s.EstimatedCards)
	}

	values := map[string]string{}
	if presetPath != "" {
		f, err := os.Open(presetPath)
		if err != nil {
			return fmt.Errorf("opening option preset: %w", err)
		}
		preset, err := options.LoadPreset(f)
		f.Close()
		if err != nil {
			return err
		}
		for id, v := range preset {
			values[id] = v
		}
		session.Options.Apply(values)
	}
	if !noPrompt {
		for id, v := range prompts.EditOptions(session.Options) {
			values[id] = v
		}
	}

	if savePresetPath != "" {
		session.Options.Apply(values)
		f, err := os.Create(savePresetPath)
		if err != nil {
			return fmt.Errorf("creating option preset: %w", err)
		}
		defer f.Close()
		if err := options.SavePreset(f, session.Options); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Options written to %s\n", savePresetPath)
		return nil
	}

	var docs []generator.Document
	if plain {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		docs, err = generator.Generate(context.Background(), session, values, logger, func(p generator.Progress) {
			if !p.Done {
				fmt.Fprintf(os.Stderr, "Rendering %s (%d/%d) ...\n", wcif.EventName(p.EventID), p.Index+1, p.Count)
			}
		})
	} else {
		docs, err = generateWithTUI(session, values)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Generation canceled")
		} else {
			fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		}
		os.Exit(3)
		return nil
	}

	for _, doc := range docs {
		w := writers.NewOutputFile(outputDir, doc.FileName)
		if _, err := w.Write(doc.Data); err != nil {
			fmt.Fprintf(os.Stderr, "Writing %s failed: %v\n", doc.FileName, err)
			os.Exit(4)
			return nil
		}
		if err := w.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Writing %s failed: %v\n", doc.FileName, err)
			os.Exit(4)
			return nil
		}
	}
	fmt.Fprintf(os.Stderr, "Wrote %d document(s) to %s\n", len(docs), outputDir)
	return nil
}

// generateWithTUI runs the generation pass behind a bubbletea progress
// view. Layout warnings are buffered and flushed once the view exits;
// quitting the view cancels the run.
func generateWithTUI(session *generator.Session, values map[string]string) ([]generator.Document, error) {
	var warnings bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&warnings, nil))

	p := tea.NewProgram(ui.NewGeneration(len(session.Model.EventIDs())), tea.WithOutput(os.Stderr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var docs []generator.Document
	var genErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		docs, genErr = generator.Generate(ctx, session, values, logger, func(prog generator.Progress) {
			if prog.Done {
				p.Send(ui.EventFinished{Name: wcif.EventName(prog.EventID), FileName: prog.FileName})
			} else {
				p.Send(ui.EventStarted{ID: prog.EventID, Name: wcif.EventName(prog.EventID)})
			}
		})
		if genErr != nil {
			p.Send(ui.GenerationError{Err: genErr})
			return
		}
		p.Send(ui.GenerationComplete{})
	}()
	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, err
	}
	cancel()
	<-done
	if warnings.Len() > 0 {
		fmt.Fprint(os.Stderr, warnings.String())
	}
	return docs, genErr
}

func main() {
	var competitionID string
	var wcifPath string
	var outputDir string
	var presetPath string
	var savePresetPath string
	var noPrompt bool
	var plain bool
	app := &cli.App{
		Name:    "wcif-scorecards",
		Usage:   "Generate printable scorecard PDFs from a competition's WCIF document",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        competitionFlag,
				Aliases:     []string{"c"},
				Usage:       "The WCA competition id to fetch",
				Destination: &competitionID,
			},
			&cli.StringFlag{
				Name:        wcifFlag,
				Usage:       "Path to a local WCIF JSON file (skips the fetch)",
				Destination: &wcifPath,
			},
			&cli.StringFlag{
				Name:        outputFlag,
				Aliases:     []string{"o"},
				Usage:       "Directory to write the per-event PDFs to",
				Value:       ".",
				Destination: &outputDir,
			},
			&cli.StringFlag{
				Name:        presetFlag,
				Aliases:     []string{"f"},
				Usage:       "YAML option preset to load before prompting",
				Destination: &presetPath,
			},
			&cli.StringFlag{
				Name:        savePresetFlag,
				Usage:       "Write the resulting option values as YAML and exit",
				Destination: &savePresetPath,
			},
			&cli.BoolFlag{
				Name:        noPromptFlag,
				Usage:       "Skip interactive option editing",
				Destination: &noPrompt,
			},
			&cli.BoolFlag{
				Name:        plainFlag,
				Usage:       "Plain progress output instead of the TUI",
				Destination: &plain,
			},
		},
		Action: func(cCtx *cli.Context) error {
			return cliHandle(competitionID, wcifPath, outputDir, presetPath, savePresetPath, noPrompt, plain)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
