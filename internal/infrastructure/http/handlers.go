package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/adapters/export"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/usecases"
)

const defaultListLimit = 50

// summaryView is a summary as returned by the API.
type summaryView struct {
	entities.Summary
	HTML         string `json:"html,omitempty"`
	DownloadName string `json:"download_name"`
}

func (s *Server) view(sum *entities.Summary, withHTML bool) summaryView {
	v := summaryView{
		Summary:      *sum,
		DownloadName: export.DownloadName(sum.FileName, export.FormatText),
	}
	if withHTML {
		v.HTML = export.HTML(sum.Text)
	}
	return v
}

// handleIndex renders the upload page.
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Models":       s.summarizer.Models(),
		"DefaultModel": s.summarizer.DefaultModel(),
		"SummaryTypes": entities.SummaryTypes(),
		"ServerKey":    s.cfg.APIKey != "",
		"KeyRequired":  s.cfg.KeyRequired,
		"History":      s.store != nil,
	})
}

// handleHealth returns server health status and, with history enabled, the
// number of stored summaries.
func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if s.store != nil {
		n, err := s.store.Count(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		body["summaries"] = n
	}
	ok(c, body)
}

func (s *Server) handleOptions(c *gin.Context) {
	ok(c, gin.H{
		"models":               s.summarizer.Models(),
		"default_model":        s.summarizer.DefaultModel(),
		"summary_types":        entities.SummaryTypes(),
		"default_summary_type": entities.SummaryConcise,
		"upload_formats":       s.summarizer.Formats(),
		"formats":              []export.Format{export.FormatText, export.FormatMarkdown, export.FormatDocx},
		"server_key":           s.cfg.APIKey != "",
		"key_required":         s.cfg.KeyRequired,
		"max_upload_bytes":     s.cfg.MaxUploadBytes,
	})
}

// handleCreateSummary summarizes an uploaded PDF. With ?stream=1 the response is
// an event stream of progress events followed by one summary or error event.
func (s *Server) handleCreateSummary(c *gin.Context) {
	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		s.fail(c, &http.MaxBytesError{Limit: s.cfg.MaxUploadBytes})
		return
	}
	body := &limitedBody{ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)}
	c.Request.Body = body

	req, err := s.readRequest(c, body)
	if err != nil {
		s.fail(c, err)
		return
	}

	if stream, _ := strconv.ParseBool(c.Query("stream")); stream {
		s.streamSummary(c, req)
		return
	}

	summary, err := s.summarizer.SummarizeFile(c.Request.Context(), req, nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, s.view(summary, true))
}

func (s *Server) streamSummary(c *gin.Context, req usecases.FileRequest) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(event string, data interface{}) {
		c.SSEvent(event, data)
		c.Writer.Flush()
	}

	summary, err := s.summarizer.SummarizeFile(c.Request.Context(), req, func(p entities.Progress) {
		send("progress", p)
	})
	if err != nil {
		body := classify(err)
		s.logFailure(c, body, err)
		send("error", body)
		return
	}
	send("summary", s.view(summary, true))
}

// limitedBody records whether the size limit cut the body short. The multipart
// reader does not always wrap the read error, e.g. when the cut lands in a part header.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var sizeErr *http.MaxBytesError
	if errors.As(err, &sizeErr) {
		b.exceeded = true
	}
	return n, err
}

// readRequest collects the form fields. A missing file is left to the use case so
// that the API key is still checked first.
func (s *Server) readRequest(c *gin.Context, body *limitedBody) (usecases.FileRequest, error) {
	var req usecases.FileRequest

	err := c.Request.ParseMultipartForm(32 << 20)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if body.exceeded {
			return req, &http.MaxBytesError{Limit: s.cfg.MaxUploadBytes}
		}
		return req, fmt.Errorf("%w: %v", usecases.ErrMissingFile, err)
	}

	req.APIKey = strings.TrimSpace(c.PostForm("api_key"))
	if req.APIKey == "" {
		req.APIKey = s.cfg.APIKey
	}
	req.Model = c.PostForm("model")
	req.SummaryType = c.PostForm("summary_type")

	header, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return req, nil
	case err != nil:
		return req, err
	}

	f, err := header.Open()
	if err != nil {
		return req, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		if body.exceeded {
			return req, &http.MaxBytesError{Limit: s.cfg.MaxUploadBytes}
		}
		return req, fmt.Errorf("reading upload: %w", err)
	}
	req.Upload = &entities.Upload{Name: header.Filename, Data: data}
	return req, nil
}

func (s *Server) handleListSummaries(c *gin.Context) {
	if s.store == nil {
		ok(c, gin.H{"data": []summaryView{}})
		return
	}

	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := s.store.List(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}

	views := make([]summaryView, 0, len(list))
	for i := range list {
		views = append(views, s.view(&list[i], false))
	}
	ok(c, gin.H{"data": views})
}

func (s *Server) handleGetSummary(c *gin.Context) {
	summary, found := s.lookup(c)
	if !found {
		return
	}
	ok(c, s.view(summary, true))
}

// handleDownload serves the summary as an attachment in the requested format.
func (s *Server) handleDownload(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	summary, found := s.lookup(c)
	if !found {
		return
	}

	data, err := export.Render(summary, format)
	if err != nil {
		s.fail(c, err)
		return
	}

	name := export.DownloadName(summary.FileName, format)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (s *Server) handleDeleteSummary(c *gin.Context) {
	if s.store == nil {
		notFound(c, "Summary not found")
		return
	}
	err := s.store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ports.ErrNotFound) {
		notFound(c, "Summary not found")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	noContent(c)
}

func (s *Server) lookup(c *gin.Context) (*entities.Summary, bool) {
	if s.store == nil {
		notFound(c, "Summary not found")
		return nil, false
	}
	summary, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ports.ErrNotFound) {
		notFound(c, "Summary not found")
		return nil, false
	}
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return summary, true
}

func (s *Server) fail(c *gin.Context, err error) {
	body := classify(err)
	s.logFailure(c, body, err)
	abort(c, body.Code, body.Message, body.Tip)
}

func (s *Server) logFailure(c *gin.Context, body errorBody, err error) {
	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", body.Code),
		zap.Error(err),
	}
	if body.Code >= http.StatusInternalServerError {
		s.logger.Error("request failed", fields...)
		return
	}
	s.logger.Info("request rejected", fields...)
}
