package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/KYO678/MeetingSummarizer/internal/logger"
	"github.com/KYO678/MeetingSummarizer/internal/text"
)

// Section headings on the published page.
const (
	summaryHeading    = "Meeting Summary"
	transcriptHeading = "Full Transcript"
)

// creationDateLayouts are tried in order when binding the date property.
var creationDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// databaseGetter is an internal interface for Notion database retrieval.
// notionapi.DatabaseClient implements this implicitly.
// This allows injecting mocks in tests.
type databaseGetter interface {
	Get(ctx context.Context, id notionapi.DatabaseID) (*notionapi.Database, error)
}

// pageCreator is an internal interface for Notion page creation.
type pageCreator interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// Request carries everything one published minutes page needs.
type Request struct {
	Filename     string
	CreationDate string
	Summary      string
	Transcript   string
}

// Publisher creates minutes pages in a single Notion database.
type Publisher struct {
	databaseID  notionapi.DatabaseID
	db          databaseGetter
	pages       pageCreator
	log         logger.Logger
	maxBlockLen int
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherLogger sets the warning logger.
func WithPublisherLogger(log logger.Logger) PublisherOption {
	return func(p *Publisher) { p.log = log }
}

// WithMaxBlockLength overrides the paragraph block size limit.
func WithMaxBlockLength(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.maxBlockLen = n
		}
	}
}

// NewPublisher creates a Publisher writing to the given database.
func NewPublisher(client *notionapi.Client, databaseID string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		databaseID:  notionapi.DatabaseID(databaseID),
		db:          client.Database,
		pages:       client.Page,
		log:         logger.Default(),
		maxBlockLen: text.DefaultMaxBlockLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish creates one new page holding the summary and the transcript.
//
// Publishing is non-fatal to the job: the transcript and summary already
// exist and remain available via export, so failures here are returned
// as a descriptive message rather than an error. On success the message
// reports how many blocks the transcript was split into.
func (p *Publisher) Publish(ctx context.Context, req Request) string {
	db, err := p.db.Get(ctx, p.databaseID)
	if err != nil {
		return fmt.Sprintf("Failed to retrieve the Notion database schema: %v", err)
	}

	bindings := SelectBindings(db.Properties)
	properties := p.buildProperties(ctx, bindings, req)

	transcriptSlices := text.Split(req.Transcript, p.maxBlockLen)
	children := p.buildBlocks(text.Split(req.Summary, p.maxBlockLen), transcriptSlices)

	_, err = p.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: p.databaseID,
		},
		Properties: properties,
		Children:   children,
	})
	if err != nil {
		return fmt.Sprintf("Failed to write to Notion: %v", err)
	}

	return fmt.Sprintf("Created a new minutes page in the Notion database. The transcript was split into %d blocks.", len(transcriptSlices))
}

// buildProperties binds the page to the discovered schema properties.
// A missing title property is a warning, not a failure.
func (p *Publisher) buildProperties(ctx context.Context, bindings Bindings, req Request) notionapi.Properties {
	properties := notionapi.Properties{}

	if bindings.TitleKey != "" {
		properties[bindings.TitleKey] = notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: req.Filename}},
			},
		}
	} else {
		p.log.Warn(ctx, "no title property found in the Notion database; publishing without a title")
	}

	if bindings.DateKey != "" && req.CreationDate != "" {
		if t, ok := parseCreationDate(req.CreationDate); ok {
			d := notionapi.Date(t)
			properties[bindings.DateKey] = notionapi.DateProperty{
				Date: &notionapi.DateObject{Start: &d},
			}
		} else {
			p.log.Warn(ctx, "cannot parse creation date %q; publishing without a date", req.CreationDate)
		}
	}

	return properties
}

// buildBlocks assembles the page body: a heading and paragraphs per
// summary slice, then a heading and paragraphs per transcript slice.
func (p *Publisher) buildBlocks(summarySlices, transcriptSlices []string) []notionapi.Block {
	blocks := make([]notionapi.Block, 0, len(summarySlices)+len(transcriptSlices)+2)

	blocks = append(blocks, headingBlock(summaryHeading))
	for _, slice := range summarySlices {
		blocks = append(blocks, paragraphBlock(slice))
	}

	blocks = append(blocks, headingBlock(transcriptHeading))
	for _, slice := range transcriptSlices {
		blocks = append(blocks, paragraphBlock(slice))
	}

	return blocks
}

func headingBlock(content string) notionapi.Block {
	return &notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading2,
		},
		Heading2: notionapi.Heading{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: content}},
			},
		},
	}
}

func paragraphBlock(content string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: content}},
			},
		},
	}
}

func parseCreationDate(s string) (time.Time, bool) {
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
