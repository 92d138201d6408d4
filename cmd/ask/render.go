package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-answer/internal/usecase"
)

type outputFormat string

const (
	formatPlain outputFormat = "plain"
	formatJSON  outputFormat = "json"
)

func parseFormat(raw string) (outputFormat, error) {
	switch outputFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case formatPlain:
		return formatPlain, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q: use plain or json", raw)
	}
}

type resultJSON struct {
	Question   string          `json:"question"`
	Sport      string          `json:"sport,omitempty"`
	Team       string          `json:"team,omitempty"`
	When       string          `json:"when,omitempty"`
	Date       string          `json:"date,omitempty"`
	Scores     json.RawMessage `json:"scores,omitempty"`
	Stats      json.RawMessage `json:"stats,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Error      string          `json:"error,omitempty"`
	ErrorKind  string          `json:"errorKind,omitempty"`
	DurationMs int64           `json:"durationMs"`
}

func render(w io.Writer, format outputFormat, results []usecase.BatchResult) error {
	if format == formatJSON {
		rows := make([]resultJSON, 0, len(results))
		for _, r := range results {
			rows = append(rows, toResultJSON(r))
		}
		enc := sonic.ConfigDefault.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "Q:\t%s\n", r.Question)
		entities := r.Answer.Entities
		if r.Err != nil {
			if e, ok := usecase.EntitiesFromError(r.Err); ok {
				entities = e
			}
		}
		if entities.Team != "" {
			fmt.Fprintf(tw, "Parsed:\t%s / %s / %s\n", entities.Sport, entities.Team, entities.When)
		}
		switch {
		case r.Err != nil:
			fmt.Fprintf(tw, "Error:\t%s: %v\n", usecase.Kind(r.Err), r.Err)
		case r.Answer.Summary != "":
			fmt.Fprintf(tw, "A:\t%s\n", r.Answer.Summary)
		default:
			fmt.Fprintf(tw, "Game:\t%s on %s\n", r.Answer.Query.TeamName, r.Answer.Query.Date)
			if r.Answer.SummaryErr != nil {
				fmt.Fprintf(tw, "Summary:\t%v\n", r.Answer.SummaryErr)
			}
			fmt.Fprintf(tw, "Scores:\t%s\n", compact(r.Answer.Scores))
		}
	}
	return tw.Flush()
}

func toResultJSON(r usecase.BatchResult) resultJSON {
	row := resultJSON{
		Question:   r.Question,
		Summary:    r.Answer.Summary,
		Scores:     r.Answer.Scores,
		Stats:      r.Answer.Stats,
		Date:       r.Answer.Query.Date,
		DurationMs: r.DurationMs,
	}
	entities := r.Answer.Entities
	err := r.Err
	if err == nil {
		err = r.Answer.SummaryErr
	}
	if err != nil {
		row.Error = err.Error()
		row.ErrorKind = usecase.Kind(err)
		if e, ok := usecase.EntitiesFromError(err); ok {
			entities = e
		}
	}
	row.Sport = string(entities.Sport)
	row.Team = entities.Team
	row.When = string(entities.When)
	return row
}

func compact(raw json.RawMessage) string {
	text := strings.Join(strings.Fields(string(raw)), " ")
	if text == "" {
		return "null"
	}
	if len(text) > 160 {
		return text[:157] + "..."
	}
	return text
}
