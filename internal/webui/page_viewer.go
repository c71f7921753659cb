package webui

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/util/httputil"
	"github.com/gorilla/csrf"
)

type viewerData struct {
	Loading    bool
	Empty      bool
	Counter    int
	Total      int
	EngineEval string
	PrevURL    string
	NextURL    string
	Board      *boardPartData
	CSRFField  template.HTML
	Error      string
}

func posURL(index int) string {
	return "/pos/" + strconv.Itoa(index+1)
}

// buildViewerData renders the position with the given zero-based index. While the positions are
// still loading, the index is ignored and the loading state is shown instead.
func buildViewerData(bc builderCtx, index int, errMsg string) (*viewerData, error) {
	cfg := bc.Config
	records, ready := cfg.Loader.Records()
	br := posbrowser.New(records)
	if ready && !br.Seek(index) && index != 0 {
		return nil, httputil.MakeError(http.StatusNotFound, "no such position")
	}

	v := br.View()
	prev, next := br.Clone(), br.Clone()
	prev.Prev()
	next.Next()
	return &viewerData{
		Loading:    !ready,
		Empty:      v.Empty(),
		Counter:    v.Counter,
		Total:      v.Total,
		EngineEval: v.EngineEval,
		PrevURL:    posURL(prev.Index()),
		NextURL:    posURL(next.Index()),
		Board:      buildBoardPartData(v, cfg.opts.BoardSize, cfg.palette),
		CSRFField:  csrf.TemplateField(bc.Req),
		Error:      errMsg,
	}, nil
}

type viewerDataBuilder struct {
	first bool
}

func (b viewerDataBuilder) Build(_ context.Context, bc builderCtx) (any, error) {
	if bc.Req.Method != http.MethodGet {
		return nil, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed")
	}
	index := 0
	if !b.first {
		num, err := strconv.Atoi(bc.Req.PathValue("num"))
		if err != nil || num < 1 {
			return nil, httputil.MakeError(http.StatusNotFound, "no such position")
		}
		index = num - 1
	}
	return buildViewerData(bc, index, "")
}

func viewerPage(log *slog.Logger, cfg *Config, templ *templator, first bool) (http.Handler, error) {
	return newPage(log, cfg, templ, viewerDataBuilder{first: first}, "viewer")
}
