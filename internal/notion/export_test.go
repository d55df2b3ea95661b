package notion

import (
	"github.com/jomei/notionapi"

	"github.com/KYO678/MeetingSummarizer/internal/logger"
	"github.com/KYO678/MeetingSummarizer/internal/text"
)

// Exports for testing. These allow black-box tests to inject dependencies
// without widening the public API.

// NewTestPublisher creates a Publisher with mock database and page
// services instead of a real Notion client.
func NewTestPublisher(databaseID string, db databaseGetter, pages pageCreator, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		databaseID:  notionapi.DatabaseID(databaseID),
		db:          db,
		pages:       pages,
		log:         logger.Discard(),
		maxBlockLen: text.DefaultMaxBlockLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
