package usecase_test

import (
	"context"
	"errors"

	"uvg-agent/internal/domain"
)

// fakeLLM returns scripted responses in order and records every request.
type fakeLLM struct {
	responses []fakeLLMResponse
	requests  []domain.CompletionRequest
}

type fakeLLMResponse struct {
	parts []domain.ContentPart
	err   error
}

func textResponse(text string) fakeLLMResponse {
	return fakeLLMResponse{parts: []domain.ContentPart{{Kind: domain.ContentKindText, Text: text}}}
}

func errorResponse(msg string) fakeLLMResponse {
	return fakeLLMResponse{err: errors.New(msg)}
}

func (f *fakeLLM) Complete(_ context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return &domain.CompletionResponse{}, nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	if next.err != nil {
		return nil, next.err
	}
	return &domain.CompletionResponse{Parts: next.parts}, nil
}

func (f *fakeLLM) calls() int {
	return len(f.requests)
}

// fakeSearch returns a fixed result and records queries.
type fakeSearch struct {
	result  *domain.SearchResult
	err     error
	queries []domain.SearchRequest
}

func (f *fakeSearch) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	f.queries = append(f.queries, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &domain.SearchResult{}, nil
	}
	return f.result, nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
