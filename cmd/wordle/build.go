package main

import (
	"fmt"
	"io"

	resultsservice "github.com/Black-And-White-Club/wordle-bot/app/modules/results/application"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	"github.com/urfave/cli/v2"
)

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "log", Usage: "chat export to read (overrides ingest.chat_log)"},
		&cli.StringFlag{Name: "answers", Usage: "answers table, CSV or XLSX (overrides ingest.answers)"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "dataset CSV to write (overrides ingest.output)"},
		&cli.StringFlag{Name: "xlsx", Usage: "also write the dataset as a workbook"},
	}
}

func (a *application) buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "parse the chat log and write the dataset",
		Flags: buildFlags(),
		Action: func(c *cli.Context) error {
			req, err := a.buildRequest(c)
			if err != nil {
				return err
			}
			svc, err := a.resultsService(nil)
			if err != nil {
				return err
			}
			result, err := svc.BuildDataset(c.Context, req)
			if err != nil {
				return err
			}
			printReport(c.App.Writer, result.Report, req)
			return nil
		},
	}
}

// buildRequest merges command flags over the ingest config.
func (a *application) buildRequest(c *cli.Context) (resultsservice.BuildRequest, error) {
	ingest := &a.cfg.Ingest
	if v := c.String("log"); v != "" {
		ingest.ChatLog = v
	}
	if v := c.String("answers"); v != "" {
		ingest.Answers = v
	}
	if v := c.String("output"); v != "" {
		ingest.Output = v
	}
	if v := c.String("xlsx"); v != "" {
		ingest.XLSXOutput = v
	}
	if err := a.cfg.ValidateBuild(); err != nil {
		return resultsservice.BuildRequest{}, err
	}
	return resultsservice.BuildRequest{
		LogPath:     ingest.ChatLog,
		AnswersPath: ingest.Answers,
		OutputPath:  ingest.Output,
		XLSXPath:    ingest.XLSXOutput,
		Aliases:     a.cfg.Aliases,
	}, nil
}

func printReport(w io.Writer, report resultstypes.RunReport, req resultsservice.BuildRequest) {
	fmt.Fprintf(w, "Run %s\n", report.RunID)
	fmt.Fprintf(w, "  lines read:     %d (skipped %d, template fallbacks %d)\n", report.LinesRead, report.LinesSkipped, report.FallbackLines)
	fmt.Fprintf(w, "  results kept:   %d\n", report.Normalize.Kept)
	for _, reason := range resultstypes.DropReasons {
		if n := report.Normalize.Dropped[reason]; n > 0 {
			fmt.Fprintf(w, "  dropped %-22s %d\n", string(reason)+":", n)
		}
	}
	fmt.Fprintf(w, "  answers loaded: %d (skipped %d)\n", report.MetadataRows, report.MetadataSkips)
	fmt.Fprintf(w, "  joined:         %d matched, %d without metadata\n", report.Join.Matched, report.Join.Unmatched)
	fmt.Fprintf(w, "  wrote %s\n", req.OutputPath)
	if req.XLSXPath != "" {
		fmt.Fprintf(w, "  wrote %s\n", req.XLSXPath)
	}
}
