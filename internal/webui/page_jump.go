package webui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alex65536/fenview/internal/util/httputil"
)

type jumpDataBuilder struct{}

func (jumpDataBuilder) Build(_ context.Context, bc builderCtx) (any, error) {
	req := bc.Req
	if req.Method != http.MethodPost {
		return nil, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed")
	}
	if err := req.ParseForm(); err != nil {
		return nil, httputil.MakeError(http.StatusBadRequest, "bad form data")
	}

	records, ready := bc.Config.Loader.Records()
	if !ready {
		return nil, bc.Redirect("/")
	}
	from, err := strconv.Atoi(req.FormValue("from"))
	if err != nil || from < 1 || from > len(records) {
		from = 1
	}

	num, err := strconv.Atoi(strings.TrimSpace(req.FormValue("pos")))
	switch {
	case err != nil:
		return buildViewerData(bc, from-1, "position must be a number")
	case num < 1 || num > len(records):
		return buildViewerData(bc, from-1, fmt.Sprintf("no position %v, there are %v positions", num, len(records)))
	}
	return nil, bc.Redirect(posURL(num - 1))
}

func jumpPage(log *slog.Logger, cfg *Config, templ *templator) (http.Handler, error) {
	return newPage(log, cfg, templ, jumpDataBuilder{}, "viewer")
}
