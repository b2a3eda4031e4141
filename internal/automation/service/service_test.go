package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocarch_backend/internal/automation/ports"
	"blocarch_backend/internal/automation/repository"
	"blocarch_backend/platform/logger"
)

type fakeFeed struct {
	gotStatus string
	gotLimit  int
	items     []ports.FeedLead
}

func (f *fakeFeed) ListFeedLeads(ctx context.Context, status string, limit int) ([]ports.FeedLead, error) {
	f.gotStatus = status
	f.gotLimit = limit
	return f.items, nil
}

type fakeRules struct {
	rules []repository.Rule
}

func (f *fakeRules) List(ctx context.Context) ([]repository.Rule, error) {
	return f.rules, nil
}

func TestClampFeedLimit(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"absent defaults to 200", 0, 200},
		{"negative clamps to 1", -5, 1},
		{"one is accepted", 1, 1},
		{"mid-range passes through", 250, 250},
		{"max is accepted", 500, 500},
		{"above max clamps to 500", 9999, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampFeedLimit(tc.in))
		})
	}
}

func TestFeed_PassesClampedLimit(t *testing.T) {
	feed := &fakeFeed{}
	svc := New(feed, &fakeRules{}, logger.New("test"))

	_, err := svc.Feed(context.Background(), "contacted", 9999)
	require.NoError(t, err)
	assert.Equal(t, 500, feed.gotLimit)
	assert.Equal(t, "contacted", feed.gotStatus)
}

func TestFeed_ServesUnknownStatusAsCold(t *testing.T) {
	feed := &fakeFeed{items: []ports.FeedLead{
		{LeadID: uuid.New(), Status: "archived", Stage: "cold", StatusKnown: false, Name: "A", Email: "a@example.com"},
		{LeadID: uuid.New(), Status: "won", Stage: "positive_reply", StatusKnown: true, Name: "B", Email: "b@example.com"},
	}}
	svc := New(feed, &fakeRules{}, logger.New("test"))

	resp, err := svc.Feed(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, resp.Leads, 2)
	assert.Equal(t, "cold", resp.Leads[0].OutreachStage)
	assert.Equal(t, "positive_reply", resp.Leads[1].OutreachStage)
}

func TestFeed_NestsPracticeContactBlock(t *testing.T) {
	leadID := uuid.New()
	practiceID := uuid.New()
	contact := "Jane Doe"
	feed := &fakeFeed{items: []ports.FeedLead{{
		LeadID:      leadID,
		PracticeID:  practiceID,
		Status:      "new",
		Stage:       "cold",
		StatusKnown: true,
		Name:        "Acme Architects",
		Email:       "hello@acme.example",
		Contact:     &contact,
	}}}
	svc := New(feed, &fakeRules{}, logger.New("test"))

	resp, err := svc.Feed(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)

	entry := resp.Leads[0]
	assert.Equal(t, leadID, entry.LeadID)
	assert.Equal(t, practiceID, entry.PracticeID)
	assert.Equal(t, practiceID, entry.Practice.ID)
	assert.Equal(t, "Acme Architects", entry.Practice.Name)
	assert.Equal(t, "hello@acme.example", entry.Practice.Email)
	require.NotNil(t, entry.Practice.Contact)
	assert.Equal(t, "Jane Doe", *entry.Practice.Contact)
}

func TestRules_EmptyObjectsNotNull(t *testing.T) {
	rules := &fakeRules{rules: []repository.Rule{{ID: uuid.New(), Name: "warm follow-up"}}}
	svc := New(&fakeFeed{}, rules, logger.New("test"))

	out, err := svc.Rules(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Segment)
	assert.NotNil(t, out[0].ActionParams)
}
