package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
)

// Source is the slice of the API client the announcement pages read from.
type Source interface {
	AnnouncementIDs(ctx context.Context, cred schoolapi.Credentials, query string) ([]int, error)
	Announcement(ctx context.Context, cred schoolapi.Credentials, id int) (annModel.Announcement, error)
}

// Writer creates and deletes announcements.
type Writer interface {
	CreateAnnouncement(ctx context.Context, cred schoolapi.Credentials, in annModel.AnnouncementCreate) (annModel.Announcement, error)
	DeleteAnnouncement(ctx context.Context, cred schoolapi.Credentials, id int) error
}

const detailWorkers = 6

// Feed lists announcements matching query in API order, with details
// fetched concurrently. limit <= 0 means all. Details that fail to load
// are dropped from the feed.
func Feed(ctx context.Context, src Source, cred schoolapi.Credentials, query string, limit int) ([]annModel.Announcement, error) {
	ids, err := src.AnnouncementIDs(ctx, cred, query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return Details(ctx, src, cred, ids), nil
}

// Details loads ids with a small worker pool, keeping the id order.
func Details(ctx context.Context, src Source, cred schoolapi.Credentials, ids []int) []annModel.Announcement {
	out := make([]annModel.Announcement, len(ids))
	ok := make([]bool, len(ids))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := detailWorkers
	if len(ids) < workers {
		workers = len(ids)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a, err := src.Announcement(ctx, cred, ids[i])
				if err != nil {
					schoolapi.Degrade("announcement "+strconv.Itoa(ids[i]), err)
					continue
				}
				out[i], ok[i] = a, true
			}
		}()
	}
	for i := range ids {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	kept := out[:0]
	for i := range out {
		if ok[i] {
			kept = append(kept, out[i])
		}
	}
	return kept
}
