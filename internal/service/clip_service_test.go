package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare domain gets https", input: "example.com", expected: "https://example.com"},
		{name: "https kept as-is", input: "https://example.com", expected: "https://example.com"},
		{name: "http kept as-is", input: "http://example.com", expected: "http://example.com"},
		{name: "surrounding whitespace trimmed", input: "  example.com  ", expected: "https://example.com"},
		{name: "empty string", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
		{name: "path preserved", input: "example.com/a/b?c=d", expected: "https://example.com/a/b?c=d"},
		{name: "other scheme still gets https prefix", input: "ftp://example.com", expected: "https://ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

func newClipServiceForTest(repo *fakeClipRepo) (IClipService, *fakeChangeFeed) {
	feed := &fakeChangeFeed{}
	svc := NewClipService(
		&fakeUOWFactory{factory: &fakeSyncRepoFactory{clips: repo}},
		feed,
		&fakePublisher{},
		noopLogger{},
	)
	return svc, feed
}

func TestClipServiceCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("title defaults to normalized url", func(t *testing.T) {
		svc, _ := newClipServiceForTest(&fakeClipRepo{})

		clip, err := svc.Create(context.Background(), userID, "example.com", "", "")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", clip.Url)
		assert.Equal(t, "https://example.com", clip.Title)
	})

	t.Run("explicit title kept", func(t *testing.T) {
		svc, _ := newClipServiceForTest(&fakeClipRepo{})

		clip, err := svc.Create(context.Background(), userID, "https://example.com", "My Link", "  a note  ")
		require.NoError(t, err)
		assert.Equal(t, "My Link", clip.Title)
		assert.Equal(t, "a note", clip.Note)
	})

	t.Run("empty url rejected before storage", func(t *testing.T) {
		svc, feed := newClipServiceForTest(&fakeClipRepo{})

		_, err := svc.Create(context.Background(), userID, "   ", "title", "note")
		assert.ErrorIs(t, err, ErrEmptyURL)
		assert.Empty(t, feed.published)
	})

	t.Run("publishes clip change", func(t *testing.T) {
		svc, feed := newClipServiceForTest(&fakeClipRepo{})

		_, err := svc.Create(context.Background(), userID, "example.com", "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"clips"}, feed.published)
	})
}
