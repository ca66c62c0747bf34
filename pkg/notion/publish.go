package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

// Notion caps a single rich text object at 2000 characters.
const maxRichTextLen = 2000

// PublishDocument creates a page under the given parent page with one
// heading per section and the section body split into paragraph blocks.
// Returns the created page ID.
func PublishDocument(ctx context.Context, c Client, parentPageID string, doc *model.WorkProduct) (string, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(parentPageID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: richText(doc.Title),
			},
		},
		Children: documentBlocks(doc),
	}

	page, err := c.CreatePage(ctx, req)
	if err != nil {
		return "", eris.Wrapf(err, "notion: publish %q", doc.Title)
	}

	zap.L().Info("notion: document published",
		zap.String("page_id", string(page.ID)),
		zap.String("title", doc.Title),
		zap.Int("sections", len(doc.Sections)),
	)
	return string(page.ID), nil
}

func documentBlocks(doc *model.WorkProduct) []notionapi.Block {
	var blocks []notionapi.Block
	for _, sec := range doc.Sections {
		blocks = append(blocks, &notionapi.Heading2Block{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeHeading2,
			},
			Heading2: notionapi.Heading{RichText: richText(sec.Title)},
		})

		for _, para := range strings.Split(sec.Content, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			blocks = append(blocks, &notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeParagraph,
				},
				Paragraph: notionapi.Paragraph{RichText: richText(para)},
			})
		}
	}
	return blocks
}

// richText splits s into rich text objects under Notion's per-object
// length cap.
func richText(s string) []notionapi.RichText {
	var out []notionapi.RichText
	for len(s) > 0 {
		chunk := s
		if len(chunk) > maxRichTextLen {
			chunk = chunk[:maxRichTextLen]
		}
		out = append(out, notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: chunk},
		})
		s = s[len(chunk):]
	}
	return out
}
