// Package service holds the automation surface logic: the lead feed served
// to external workflow tools and the rule listing.
package service

import (
	"context"

	"blocarch_backend/internal/automation/ports"
	"blocarch_backend/internal/automation/repository"
	"blocarch_backend/internal/automation/transport"
	"blocarch_backend/platform/logger"
)

const (
	feedLimitDefault = 200
	feedLimitMin     = 1
	feedLimitMax     = 500
)

// RuleStore is the data access surface the service needs.
type RuleStore interface {
	List(ctx context.Context) ([]repository.Rule, error)
}

type Service struct {
	feed  ports.FeedSource
	rules RuleStore
	log   *logger.Logger
}

func New(feed ports.FeedSource, rules RuleStore, log *logger.Logger) *Service {
	return &Service{feed: feed, rules: rules, log: log}
}

// ClampFeedLimit normalizes a requested feed size into [1,500]. Zero stands
// for "absent or unparseable" and maps to the default of 200.
func ClampFeedLimit(limit int) int {
	switch {
	case limit == 0:
		return feedLimitDefault
	case limit < feedLimitMin:
		return feedLimitMin
	case limit > feedLimitMax:
		return feedLimitMax
	}
	return limit
}

// Feed returns leads ready for outreach. Every entry has a practice email;
// a lead whose stored status is outside the pipeline enum is served with
// stage cold and reported, never dropped.
func (s *Service) Feed(ctx context.Context, status string, limit int) (transport.FeedResponse, error) {
	items, err := s.feed.ListFeedLeads(ctx, status, ClampFeedLimit(limit))
	if err != nil {
		return transport.FeedResponse{}, err
	}

	resp := transport.FeedResponse{Leads: make([]transport.FeedItemResponse, 0, len(items))}
	for _, lead := range items {
		if !lead.StatusKnown {
			s.log.DataIntegrityWarning("lead", "status", lead.Status)
		}
		resp.Leads = append(resp.Leads, transport.ToFeedItemResponse(lead))
	}
	return resp, nil
}

// Rules lists automation rules, newest first.
func (s *Service) Rules(ctx context.Context) ([]transport.RuleResponse, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, transport.ToRuleResponse(rule))
	}
	return out, nil
}
