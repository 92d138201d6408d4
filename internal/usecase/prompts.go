package usecase

import (
	"encoding/json"

	"github.com/riskibarqy/sports-answer/internal/domain/assistant"
	"github.com/riskibarqy/sports-answer/internal/domain/query"
	"github.com/valyala/bytebufferpool"
)

const extractionSystemPrompt = "Extract sport query entities as strict JSON. " +
	"Only allow sports that belong to {nba, nfl, ncaaf}. " +
	"Map 'college football' to 'ncaaf'. " +
	"Map 'basketball' to 'nba'. " +
	"For when, only return 'today' or 'yesterday'. " +
	"If a college team is mentioned, return the school name (e.g. 'alabama', 'usc', 'texas', 'iowa', 'tcu', 'baylor'). " +
	"If a professional team is mentioned (nfl or nba), return its location and franchise name (e.g. 'phoenix suns', 'houston rockets', 'utah jazz'). " +
	"If unsure, pick the most likely team from context and still return valid JSON."

const extractionFormatHint = `Return ONLY JSON in the format: {"sport": "nba|nfl|ncaaf", "team": "string", "when": "today|yesterday"}`

const summarySystemPrompt = "You are a concise sports analyst that responds to user queries about football and basketball games. " +
	"You use real game stats to answer the user queries. " +
	"Use ONLY the JSON provided for your analysis. " +
	"Say if the team won or lost, if they were home or away, the final score, " +
	"what seemed to go well or not so well, and 1-2 key stats. Keep it under 70 words."

func extractionRequest(text string) assistant.Request {
	return assistant.Request{
		Messages: []assistant.Message{
			assistant.System(extractionSystemPrompt),
			assistant.User(text + "\n" + extractionFormatHint),
		},
		JSONObject: true,
	}
}

func summaryRequest(question string, entities query.Entities, scores, stats json.RawMessage) assistant.Request {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("User question: ")
	_, _ = buf.WriteString(question)
	_, _ = buf.WriteString("\nSport: ")
	_, _ = buf.WriteString(entities.Sport.String())
	_, _ = buf.WriteString("\nTeam: ")
	_, _ = buf.WriteString(entities.Team)
	_, _ = buf.WriteString("\nWhen: ")
	_, _ = buf.WriteString(entities.When.String())
	_, _ = buf.WriteString("\n\nScores JSON:\n")
	_, _ = buf.Write(jsonOrNull(scores))
	_, _ = buf.WriteString("\n\nTeam Stats JSON:\n")
	_, _ = buf.Write(jsonOrNull(stats))

	return assistant.Request{
		Messages: []assistant.Message{
			assistant.System(summarySystemPrompt),
			assistant.User(buf.String()),
		},
	}
}

func jsonOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
