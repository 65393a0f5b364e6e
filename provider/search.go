package provider

import (
	"context"

	"grokmcp/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// searchParameters is the xAI "search_parameters" request object.
type searchParameters struct {
	Mode             string               `json:"mode"`
	ReturnCitations  bool                 `json:"return_citations"`
	FromDate         string               `json:"from_date,omitempty"`
	ToDate           string               `json:"to_date,omitempty"`
	MaxSearchResults int                  `json:"max_search_results,omitempty"`
	Sources          []model.SearchSource `json:"sources,omitempty"`
}

// buildSearchParameters maps validated search params onto the vendor object.
//
// An explicit source list wins. Otherwise a country or RSS links produce the
// default web/news/x trio (country-scoped when given) plus one rss source per
// link. With neither, sources are left to the vendor default.
func buildSearchParameters(params model.SearchParams) searchParameters {
	sp := searchParameters{
		Mode:            string(params.Mode),
		ReturnCitations: params.WantsCitations(),
		FromDate:        params.FromDate,
		ToDate:          params.ToDate,
	}
	if sp.Mode == "" {
		sp.Mode = string(model.SearchModeOn)
	}
	if n := params.ResultCap(); n != model.DefaultMaxSearchResults {
		sp.MaxSearchResults = n
	}

	switch {
	case len(params.Sources) > 0:
		sp.Sources = params.Sources
	case params.Country != "" || len(params.RSSLinks) > 0:
		sources := []model.SearchSource{
			{Type: model.SourceWeb, Country: params.Country},
			{Type: model.SourceNews, Country: params.Country},
			{Type: model.SourceX},
		}
		for _, link := range params.RSSLinks {
			sources = append(sources, model.SearchSource{Type: model.SourceRSS, Links: []string{link}})
		}
		sp.Sources = sources
	}

	return sp
}

// LiveSearch implements model.Provider.LiveSearch.
func (p *XAIProvider) LiveSearch(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	const op = "live_search"
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireKey(op); err != nil {
		return nil, err
	}

	modelName := pick(params.Model, p.opts.Models.Search)
	req := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: buildMessages(params.SystemPrompt, params.Prompt),
	}

	completion, err := p.client.Chat.Completions.New(ctx, req,
		option.WithJSONSet("search_parameters", buildSearchParameters(params)),
		p.timeoutFor(modelName),
	)
	if err != nil {
		return nil, mapError(op, err)
	}

	msg, err := firstMessage(op, completion)
	if err != nil {
		return nil, err
	}

	usage := convertCompletionUsage(completion.Usage)
	result := &model.SearchResult{
		Content:        msg.Content,
		Usage:          usage,
		NumSourcesUsed: usage.NumSourcesUsed,
	}
	if params.WantsCitations() {
		result.Citations = extractCitations(completion)
	}

	return result, nil
}
