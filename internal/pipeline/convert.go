package pipeline

import (
	"context"
	"html"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/pkg/render"
)

// convertDocument serializes a finished document into the requested
// format. Markdown and HTML are deterministic string assembly; pdf and
// docx delegate to the external rendering service.
func convertDocument(ctx context.Context, wp *model.WorkProduct, format model.OutputFormat, renderer render.Client) (*model.ConversionResult, error) {
	switch format {
	case model.FormatMarkdown:
		return &model.ConversionResult{
			Format:  format,
			Content: toMarkdown(wp),
			Metadata: map[string]any{
				"word_count":   wp.WordCount(),
				"reading_time": wp.ReadingTime(),
			},
		}, nil

	case model.FormatHTML:
		return &model.ConversionResult{
			Format:  format,
			Content: toHTML(wp),
			Metadata: map[string]any{
				"word_count":   wp.WordCount(),
				"reading_time": wp.ReadingTime(),
			},
		}, nil

	case model.FormatPDF, model.FormatDocx:
		if renderer == nil {
			return nil, eris.Errorf("convert: no rendering service configured for %s output", format)
		}
		result, err := renderer.Render(ctx, format, wp)
		if err != nil {
			return nil, eris.Wrapf(err, "convert: render %s", format)
		}
		return &model.ConversionResult{
			Format:      format,
			Content:     result.ContentID,
			DownloadURL: result.DownloadURL,
			Metadata: map[string]any{
				"byte_size": result.ByteSize,
			},
		}, nil

	default:
		return nil, eris.Errorf("convert: unsupported format %q", format)
	}
}

func toMarkdown(wp *model.WorkProduct) string {
	var b strings.Builder
	b.WriteString("# " + wp.Title + "\n")
	for _, sec := range wp.Sections {
		b.WriteString("\n## " + sec.Title + "\n\n")
		b.WriteString(sec.Content + "\n")
	}
	return b.String()
}

func toHTML(wp *model.WorkProduct) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>")
	b.WriteString(html.EscapeString(wp.Title))
	b.WriteString("</title></head>\n<body>\n<h1>")
	b.WriteString(html.EscapeString(wp.Title))
	b.WriteString("</h1>\n")
	for _, sec := range wp.Sections {
		b.WriteString("<h2>" + html.EscapeString(sec.Title) + "</h2>\n")
		for _, para := range strings.Split(sec.Content, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			b.WriteString("<p>" + html.EscapeString(para) + "</p>\n")
		}
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
