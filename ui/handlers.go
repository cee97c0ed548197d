package ui

import (
	"net/http"
	"strconv"
	"strings"

	"diabex/domain/dataset"
	"diabex/internal/analysis"
	"diabex/internal/errors"
	"diabex/internal/profiling"
	"diabex/internal/report"
	"diabex/internal/session"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "session_id": s.session.ID.String()})
}

func (s *Server) handleSession(c *gin.Context) {
	raw := s.session.Raw()
	c.JSON(http.StatusOK, gin.H{
		"id":          s.session.ID.String(),
		"source":      s.session.Source,
		"loaded_at":   s.session.LoadedAt,
		"rows":        raw.RowCount(),
		"columns":     raw.ColumnNames(),
		"imputations": s.session.Imputations,
	})
}

// table resolves ?view= to the session's raw or cleaned table
func (s *Server) table(c *gin.Context) (*dataset.Table, session.View, bool) {
	view, err := session.ParseView(c.Query("view"))
	if err != nil {
		s.respondError(c, errors.InvalidInput(err.Error()))
		return nil, "", false
	}
	return s.session.Table(view), view, true
}

func (s *Server) handleSample(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}

	n := s.sampleRows
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondError(c, errors.InvalidInput("n must be a positive integer"))
			return
		}
		n = parsed
	}

	head := table.Head(n)
	rows := make([]map[string]*float64, head.RowCount())
	for i := range rows {
		rows[i] = head.Row(i)
	}
	c.JSON(http.StatusOK, gin.H{
		"view":    view,
		"columns": head.ColumnNames(),
		"rows":    rows,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}
	summary, err := profiling.NewStatsEngine().Summary(table)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "summary": summary})
}

func (s *Server) handleMissing(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "missing": profiling.NewStatsEngine().MissingData(table)})
}

func (s *Server) handleZeros(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "zeros": profiling.NewStatsEngine().NumberOfZeros(table)})
}

func (s *Server) handleOutcome(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}
	counts, err := analysis.OutcomeDistribution(table)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "distribution": analysis.SortedOutcomeCounts(counts)})
}

// handleCorrelation serves the full matrix when no columns parameter is given,
// otherwise the matrix of the selected columns.
func (s *Server) handleCorrelation(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}

	var (
		m   *analysis.CorrelationMatrix
		err error
	)
	if columns, given := columnsParam(c); given {
		m, err = analysis.CorrelationMatrixFor(table, columns)
	} else {
		m, err = analysis.FullCorrelationMatrix(table)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "matrix": m})
}

func (s *Server) handleBoxplots(c *gin.Context) {
	table, view, ok := s.table(c)
	if !ok {
		return
	}
	columns, _ := columnsParam(c)
	boxes, err := analysis.Boxplots(table, columns)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "boxplots": boxes})
}

func (s *Server) handleReport(c *gin.Context) {
	view, err := session.ParseView(c.Query("view"))
	if err != nil {
		s.respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	opts := report.DefaultOptions()
	opts.View = view
	opts.SampleRows = s.sampleRows
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(s.session, opts))
}

// columnsParam accepts ?columns=A,B as well as repeated ?columns=A&columns=B.
// The second result is false when the parameter is absent.
func columnsParam(c *gin.Context) ([]string, bool) {
	values, given := c.GetQueryArray("columns")
	if !given {
		return nil, false
	}
	var columns []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				columns = append(columns, part)
			}
		}
	}
	return columns, true
}
