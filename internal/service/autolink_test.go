package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/dto"
	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAutoLinkWrapsTitleOccurrence(t *testing.T) {
	repo := newMemRepo()
	repo.add("Graph Theory", "Graph Theory fundamentals")
	source := repo.add("Source", "I studied Graph Theory today")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	assert.Equal(t, "I studied [[Graph Theory]] today", result.Content)
	require.Len(t, result.Report.AddedLinks, 1)
	added := result.Report.AddedLinks[0]
	assert.Equal(t, "Graph Theory", added.OriginalText)
	assert.Equal(t, "Graph Theory", added.TargetTitle)
	assert.Equal(t, 10, added.SpanStart)
	assert.Equal(t, 10+len("Graph Theory"), added.SpanEnd)
	assert.Equal(t, 1, result.Report.TotalLinksAdded)
	assert.False(t, result.Applied)
	assert.NotEmpty(t, result.DiffPreview)
}

func TestAutoLinkNeverWrapsOwnTitle(t *testing.T) {
	repo := newMemRepo()
	repo.add("Other", "unrelated")
	source := repo.add("Memory", "Memory is the topic of this note about Memory")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	assert.Equal(t, source.Content, result.Content)
	assert.Zero(t, result.Report.TotalLinksAdded)
}

func TestAutoLinkSkipsExistingRefs(t *testing.T) {
	repo := newMemRepo()
	repo.add("Target", "Target notes")
	source := repo.add("Source", "[[Target]] and Target again")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	// only the bare occurrence outside the existing brackets is wrapped
	assert.Equal(t, "[[Target]] and [[Target]] again", result.Content)
	assert.Equal(t, 1, result.Report.TotalLinksAdded)
}

func TestAutoLinkOffsetsSurviveCaseFoldingWidth(t *testing.T) {
	// İ lowercases to a wider byte sequence; insertion points must still
	// land on the original word
	repo := newMemRepo()
	repo.add("Target", "Target notes")
	source := repo.add("Source", "İstanbul trip notes about Target today")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	assert.Equal(t, "İstanbul trip notes about [[Target]] today", result.Content)
	require.Len(t, result.Report.AddedLinks, 1)
	added := result.Report.AddedLinks[0]
	assert.Equal(t, "Target", added.OriginalText)
	assert.Equal(t, "Target", source.Content[added.SpanStart:added.SpanEnd])
}

func TestAutoLinkWrapsWideFoldedOccurrence(t *testing.T) {
	// K (U+212A) folds to k, so the matched window is wider than the
	// title; the original bytes are what gets wrapped
	repo := newMemRepo()
	repo.add("Kelvin", "temperature scale")
	source := repo.add("Source", "measured in Kelvin units")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	assert.Equal(t, "measured in [[Kelvin]] units", result.Content)
	require.Len(t, result.Report.AddedLinks, 1)
	assert.Equal(t, "Kelvin", result.Report.AddedLinks[0].OriginalText)
	assert.Equal(t, "Kelvin", result.Report.AddedLinks[0].TargetTitle)
}

func TestAutoLinkLongestTitleWins(t *testing.T) {
	repo := newMemRepo()
	repo.add("Target", "Target body")
	repo.add("Target Extended", "Target Extended body")
	source := repo.add("Source", "read Target Extended first")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	assert.Equal(t, "read [[Target Extended]] first", result.Content)
	require.Len(t, result.Report.AddedLinks, 1)
	assert.Equal(t, "Target Extended", result.Report.AddedLinks[0].TargetTitle)
}

func TestAutoLinkIgnoresPartialWordMatches(t *testing.T) {
	repo := newMemRepo()
	repo.add("Target", "Target body")
	source := repo.add("Source", "an untargeted Targets remark")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0})
	require.NoError(t, err)

	assert.Equal(t, source.Content, result.Content)
	assert.Zero(t, result.Report.TotalLinksAdded)
}

func TestAutoLinkSimilarityThreshold(t *testing.T) {
	repo := newMemRepo()
	// titles share no tokens with the source, scoring them near zero
	repo.add("Kubernetes", "container orchestration platform")
	source := repo.add("Cooking", "How to cook pasta with Kubernetes on the side")

	svc := newTestLinkService(repo)
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0.9})
	require.NoError(t, err)

	assert.Equal(t, source.Content, result.Content)
	assert.Zero(t, result.Report.TotalLinksAdded)
}

func TestAutoLinkInvalidSimilarity(t *testing.T) {
	repo := newMemRepo()
	source := repo.add("Source", "")
	svc := newTestLinkService(repo)

	for _, v := range []float64{-0.1, 1.1} {
		_, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: v})
		requireCode(t, err, code.ErrorLinkSimilarityInvalid)
	}
}

func TestAutoLinkNotFound(t *testing.T) {
	svc := newTestLinkService(newMemRepo())
	_, err := svc.AutoLink(context.Background(), 404, &dto.AutoLinkRequest{})
	requireCode(t, err, code.ErrorNoteNotFound)
}

func TestAutoLinkApplyPersists(t *testing.T) {
	repo := newMemRepo()
	repo.add("Graph Theory", "Graph Theory fundamentals")
	source := repo.add("Source", "about Graph Theory")
	pub := &capturePublisher{}

	svc := NewLinkService(repo, pub, LinkServiceConfig{}, zap.NewNop())
	result, err := svc.AutoLink(context.Background(), source.ID, &dto.AutoLinkRequest{MinSimilarity: 0, Apply: true})
	require.NoError(t, err)
	assert.True(t, result.Applied)

	stored, err := repo.GetByID(context.Background(), source.ID)
	require.NoError(t, err)
	assert.Equal(t, "about [[Graph Theory]]", stored.Content)
	assert.Equal(t, []string{EventNoteAutoLinked}, pub.names())
}

func TestAutoLinkSecondRunAddsNothing(t *testing.T) {
	repo := newMemRepo()
	repo.add("Graph Theory", "Graph Theory fundamentals")
	source := repo.add("Source", "about Graph Theory and Graph Theory")

	svc := newTestLinkService(repo)
	req := &dto.AutoLinkRequest{MinSimilarity: 0, Apply: true}

	first, err := svc.AutoLink(context.Background(), source.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Report.TotalLinksAdded)

	second, err := svc.AutoLink(context.Background(), source.ID, req)
	require.NoError(t, err)
	assert.Zero(t, second.Report.TotalLinksAdded)
	assert.Equal(t, first.Content, second.Content)
	assert.False(t, second.Applied)
}

// rewriteWithLinks must be idempotent for any content: a second pass over
// its own output finds nothing left to wrap.
func TestRewriteWithLinksIdempotentProperty(t *testing.T) {
	titles := []*domain.Note{
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta Gamma"},
		{ID: 3, Title: "Delta"},
	}
	words := gen.OneConstOf("Alpha", "Beta", "Beta Gamma", "Delta", "plain", "text", "[[Alpha]]", "deltas")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("second rewrite pass adds zero links", prop.ForAll(
		func(parts []string) bool {
			content := strings.Join(parts, " ")
			once, _ := rewriteWithLinks(content, titles)
			twice, report := rewriteWithLinks(once, titles)
			return twice == once && report.TotalLinksAdded == 0
		},
		gen.SliceOf(words),
	))

	properties.TestingRun(t)
}
