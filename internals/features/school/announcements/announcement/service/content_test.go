package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
)

func TestRenderMarkdownEscapesHTML(t *testing.T) {
	out := string(RenderContent("**Exam** week\n<script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>Exam</strong>")
	assert.NotContains(t, out, "<script>")
	assert.Empty(t, RenderContent("   "))
}

func TestRenderEditorDocument(t *testing.T) {
	doc := `{"type":"doc","content":[
		{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Sports day"}]},
		{"type":"paragraph","attrs":{"textAlign":"center"},"content":[
			{"type":"text","text":"Bring "},
			{"type":"text","text":"water","marks":[{"type":"bold"},{"type":"italic"}]},
			{"type":"hardBreak"},
			{"type":"text","text":"map","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]},
			{"type":"text","text":"site","marks":[{"type":"link","attrs":{"href":"https://school.test"}}]}
		]},
		{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"<hat>"}]}]}]}
	]}`
	out := string(RenderContent(doc))

	assert.Contains(t, out, "<h2>Sports day</h2>")
	assert.Contains(t, out, `<p style="text-align: center">Bring <strong><em>water</em></strong><br>`)
	assert.Contains(t, out, "map") // unsafe link dropped, text kept
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `<a href="https://school.test" rel="noopener noreferrer" target="_blank">site</a>`)
	assert.Contains(t, out, `<ul class="list-disc"><li><p>&lt;hat&gt;</p></li></ul>`)

	assert.Equal(t, "Sports day Bring water map site <hat>", PlainText(doc))
}

func TestInvalidDocumentFallsBackToMarkdown(t *testing.T) {
	out := string(RenderContent(`{"type":"para"}`))
	assert.Contains(t, out, "<p>")
}

type fakeSource struct {
	ids   []int
	fail  map[int]bool
	calls atomic.Int32
}

func (f *fakeSource) AnnouncementIDs(ctx context.Context, cred schoolapi.Credentials, query string) ([]int, error) {
	if query == "boom" {
		return nil, errors.New("down")
	}
	return f.ids, nil
}

func (f *fakeSource) Announcement(ctx context.Context, cred schoolapi.Credentials, id int) (annModel.Announcement, error) {
	f.calls.Add(1)
	if f.fail[id] {
		return annModel.Announcement{}, errors.New("nope")
	}
	return annModel.Announcement{ID: id, Title: "A"}, nil
}

func TestFeedKeepsOrderAndDropsFailures(t *testing.T) {
	src := &fakeSource{ids: []int{9, 3, 7, 1, 5, 2, 8, 4}, fail: map[int]bool{7: true}}

	list, err := Feed(context.Background(), src, schoolapi.Credentials{}, "", 0)
	require.NoError(t, err)
	got := make([]int, 0, len(list))
	for _, a := range list {
		got = append(got, a.ID)
	}
	assert.Equal(t, []int{9, 3, 1, 5, 2, 8, 4}, got)

	src.calls.Store(0)
	list, err = Feed(context.Background(), src, schoolapi.Credentials{}, "", 5)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.EqualValues(t, 5, src.calls.Load())

	_, err = Feed(context.Background(), src, schoolapi.Credentials{}, "boom", 0)
	assert.Error(t, err)
}
