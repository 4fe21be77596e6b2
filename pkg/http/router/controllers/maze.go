package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	helper "github.com/lintang-b-s/Mazex/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/Mazex/pkg/http/usecases"
	"go.uber.org/zap"
)

type mazeAPI struct {
	apiErrors
	mazeService MazeService
	log         *zap.Logger
}

func New(mazeService MazeService, log *zap.Logger) *mazeAPI {
	return &mazeAPI{
		apiErrors:   apiErrors{log: log},
		mazeService: mazeService,
		log:         log,
	}
}

func (api *mazeAPI) Routes(group *helper.RouteGroup) {
	group.GET("/maze", api.generate)
	group.GET("/maze/:id", api.get)
	group.GET("/maze/:id/solve", api.solve)
	group.GET("/maze/:id/export", api.export)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid int", key)
	}
	return n, nil
}

// generate godoc
//
//	@Summary		generate a maze
//	@Description	generate a solvable maze. the same parameters return the cached maze.
//	@Tags			maze
//	@Param			width		query	int		false	"width in cells"
//	@Param			height		query	int		false	"height in cells"
//	@Param			seed		query	int		false	"random seed"
//	@Param			frontier	query	string	false	"stack or queue"
//	@Param			fold_turns	query	bool	false	"treat turns as corridor cells"
//	@Produce		application/json
//	@Router			/maze [get]
//	@Success		200	{object}	mazeResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *mazeAPI) generate(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request generateMazeRequest
		err     error
	)
	defaults := api.mazeService.GetDefaults()
	query := r.URL.Query()

	request.Width, err = queryInt(r, "width", defaults.Width)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Height, err = queryInt(r, "height", defaults.Height)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if s := query.Get("seed"); s != "" {
		request.Seed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("seed must be a valid int"))
			return
		}
	}
	request.Frontier = query.Get("frontier")
	if s := query.Get("fold_turns"); s != "" {
		request.FoldTurns, err = strconv.ParseBool(s)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("fold_turns must be a valid bool"))
			return
		}
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	m, err := api.mazeService.Generate(r.Context(), request.toParams())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewMazeResponse(m)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// get godoc
//
//	@Summary	get a generated maze
//	@Tags		maze
//	@Param		id	path	string	true	"maze id"
//	@Produce	application/json
//	@Router		/maze/{id} [get]
//	@Success	200	{object}	mazeResponse
//	@Failure	404	{object}	errorResponse
func (api *mazeAPI) get(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	m, err := api.mazeService.Get(p.ByName("id"))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewMazeResponse(m)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// solve godoc
//
//	@Summary		solve a generated maze between two cells
//	@Description	defaults to the maze entry and exit. level is cell or junction.
//	@Tags			maze
//	@Param			id		path	string	true	"maze id"
//	@Param			from_x	query	int		false	"from x"
//	@Param			from_z	query	int		false	"from z"
//	@Param			to_x	query	int		false	"to x"
//	@Param			to_z	query	int		false	"to z"
//	@Param			level	query	string	false	"cell or junction"
//	@Produce		application/json
//	@Router			/maze/{id}/solve [get]
//	@Success		200	{object}	solveResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
func (api *mazeAPI) solve(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	m, err := api.mazeService.Get(p.ByName("id"))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	start := m.Snapshot.CellOf(m.Snapshot.GetStart())
	end := m.Snapshot.CellOf(m.Snapshot.GetEnd())

	var request solveMazeRequest
	if request.FromX, err = queryInt(r, "from_x", start.X); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.FromZ, err = queryInt(r, "from_z", start.Z); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.ToX, err = queryInt(r, "to_x", end.X); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.ToZ, err = queryInt(r, "to_z", end.Z); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Level = r.URL.Query().Get("level")
	if request.Level == "" {
		request.Level = usecases.SOLVE_LEVEL_CELL
	}

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	path, junctions, err := api.mazeService.Solve(p.ByName("id"),
		datastructure.NewCell(request.FromX, request.FromZ),
		datastructure.NewCell(request.ToX, request.ToZ), request.Level)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewSolveResponse(m, request.Level, path, junctions)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// export godoc
//
//	@Summary	download the bzip2 snapshot of a maze
//	@Tags		maze
//	@Param		id	path	string	true	"maze id"
//	@Produce	application/x-bzip2
//	@Router		/maze/{id}/export [get]
//	@Success	200
//	@Failure	404	{object}	errorResponse
func (api *mazeAPI) export(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id := p.ByName("id")

	var buf bytes.Buffer
	if err := api.mazeService.Export(id, &buf); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-bzip2")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".maze.bz2"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		api.log.Error("write export", zap.String("id", id), zap.Error(err))
	}
}
