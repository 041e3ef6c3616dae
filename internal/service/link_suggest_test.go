package service

import (
	"context"
	"testing"

	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestInvalidLimit(t *testing.T) {
	repo := newMemRepo()
	source := repo.add("Source", "")
	svc := newTestLinkService(repo)

	for _, limit := range []int{0, -1} {
		_, err := svc.Suggest(context.Background(), source.ID, limit)
		requireCode(t, err, code.ErrorLinkLimitInvalid)
	}
}

func TestSuggestNotFound(t *testing.T) {
	svc := newTestLinkService(newMemRepo())
	_, err := svc.Suggest(context.Background(), 404, 10)
	requireCode(t, err, code.ErrorNoteNotFound)
}

func TestSuggestExcludesSelfAndLinked(t *testing.T) {
	repo := newMemRepo()
	linked := repo.add("Graph Theory", "graph theory nodes and edges")
	related := repo.add("Graph Algorithms", "graph traversal and search")
	repo.add("Cooking", "pasta recipes")
	source := repo.add("Graph Research", "my graph research links [[Graph Theory]]")

	svc := newTestLinkService(repo)
	suggestions, err := svc.Suggest(context.Background(), source.ID, 10)
	require.NoError(t, err)

	for _, s := range suggestions {
		assert.NotEqual(t, source.ID, s.Note.ID, "source must not suggest itself")
		assert.NotEqual(t, linked.ID, s.Note.ID, "already linked notes are excluded")
	}
	require.NotEmpty(t, suggestions)
	assert.Equal(t, related.ID, suggestions[0].Note.ID)
	assert.NotEmpty(t, suggestions[0].Reason)
	assert.Greater(t, suggestions[0].Score, 0.0)
}

func TestSuggestOrderingDeterministic(t *testing.T) {
	repo := newMemRepo()
	repo.add("Go Concurrency", "goroutines channels select")
	repo.add("Go Generics", "type parameters constraints")
	repo.add("Rust Ownership", "borrow checker lifetimes")
	source := repo.add("Go Patterns", "concurrency patterns with goroutines and channels in go")

	svc := newTestLinkService(repo)
	first, err := svc.Suggest(context.Background(), source.ID, 10)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Suggest(context.Background(), source.ID, 10)
		require.NoError(t, err)
		require.Equal(t, first, again, "repeated calls must return identical ordering")
	}

	// scores descend, ties break on title ascending
	for i := 1; i < len(first); i++ {
		if first[i-1].Score == first[i].Score {
			assert.Less(t, first[i-1].Note.Title, first[i].Note.Title)
		} else {
			assert.Greater(t, first[i-1].Score, first[i].Score)
		}
	}
}

func TestSuggestHonorsLimit(t *testing.T) {
	repo := newMemRepo()
	repo.add("Go One", "go go go")
	repo.add("Go Two", "go go go")
	repo.add("Go Three", "go go go")
	source := repo.add("Go Hub", "go notes")

	svc := newTestLinkService(repo)
	suggestions, err := svc.Suggest(context.Background(), source.ID, 2)
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestSuggestSkipsZeroScores(t *testing.T) {
	repo := newMemRepo()
	repo.add("Quantum", "entanglement qubits")
	source := repo.add("Gardening", "tomato seedlings")

	svc := newTestLinkService(repo)
	suggestions, err := svc.Suggest(context.Background(), source.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
