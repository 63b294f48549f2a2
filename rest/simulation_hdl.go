package rest

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/errs"
	"github.com/Gthulhu/schedsim/procfile"
)

const maxBodyBytes = 4 << 20

type ProcessRequest struct {
	BurstTime   int `json:"burst_time"`
	Priority    int `json:"priority"`
	ArrivalTime int `json:"arrival_time"`
	QueueID     int `json:"queue_id"`
}

type CreateSimulationRequest struct {
	Processes []ProcessRequest `json:"processes"`
}

type ListSimulationsResponse struct {
	Runs []*domain.SimulationRun `json:"runs"`
}

// CreateSimulation godoc
// @Summary Run a simulation
// @Description Run FCFS, SJF and Priority over every queue of the submitted processes.
// @Tags Simulations
// @Accept json
// @Produce json
// @Param request body CreateSimulationRequest true "Process descriptors"
// @Success 200 {object} SuccessResponse[domain.SimulationRun]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations [post]
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateSimulationRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := h.JSONBind(r, &req)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	specs := make([]domain.ProcessSpec, len(req.Processes))
	for i, p := range req.Processes {
		specs[i] = domain.ProcessSpec{
			BurstTime:   p.BurstTime,
			Priority:    p.Priority,
			ArrivalTime: p.ArrivalTime,
			QueueID:     p.QueueID,
		}
	}

	run, err := h.Svc.Simulate(ctx, specs)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(run))
}

// CreateRawSimulation godoc
// @Summary Run a simulation from an input file body
// @Description Accepts burst:priority:arrival:queue lines and answers with the result lines.
// @Tags Simulations
// @Accept plain
// @Produce plain
// @Param format query string false "lines, json or yaml"
// @Param algorithm query string false "keep only these algorithms, e.g. sjf,priority"
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/simulations/raw [post]
func (h *Handler) CreateRawSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format, err := procfile.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid format", err)
		return
	}

	algs, err := domain.ParseAlgorithms(r.URL.Query()["algorithm"])
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid algorithm", err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	specs, skipped, err := h.reader.Parse(ctx, bytes.NewReader(body))
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	run, err := h.Svc.Simulate(ctx, specs)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	w.Header().Set("X-Skipped-Lines", strconv.Itoa(len(skipped)))
	h.EncodedResponse(w, r, format, onlyAlgorithms(run, algs))
}

// ListSimulations godoc
// @Summary List stored simulations
// @Tags Simulations
// @Produce json
// @Param limit query int false "Maximum number of runs, newest first"
// @Success 200 {object} SuccessResponse[ListSimulationsResponse]
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/simulations [get]
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opt := &domain.QueryRunOptions{}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || limit < 0 {
			h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		opt.Limit = limit
	}

	err := h.Svc.ListRuns(ctx, opt)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := ListSimulationsResponse{Runs: opt.Result}
	if resp.Runs == nil {
		resp.Runs = []*domain.SimulationRun{}
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

// GetSimulation godoc
// @Summary Get a stored simulation
// @Tags Simulations
// @Produce json,plain,yaml
// @Param id path string true "Simulation id"
// @Param format query string false "json (default), lines or yaml"
// @Param algorithm query string false "keep only these algorithms, e.g. fcfs or 1"
// @Success 200 {object} SuccessResponse[domain.SimulationRun]
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/simulations/{id} [get]
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := h.GetPathParam(r, "id")

	rawFormat := r.URL.Query().Get("format")
	if rawFormat == "" {
		rawFormat = string(procfile.FormatJSON)
	}
	format, err := procfile.ParseFormat(rawFormat)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid format", err)
		return
	}

	algs, err := domain.ParseAlgorithms(r.URL.Query()["algorithm"])
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid algorithm", err)
		return
	}

	run, err := h.Svc.GetRun(ctx, id)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	run = onlyAlgorithms(run, algs)
	if format == procfile.FormatJSON {
		h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(run))
		return
	}
	h.EncodedResponse(w, r, format, run)
}

// DeleteSimulation godoc
// @Summary Delete a stored simulation
// @Tags Simulations
// @Produce json
// @Param id path string true "Simulation id"
// @Success 200 {object} SuccessResponse[EmptyResponse]
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/simulations/{id} [delete]
func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := h.GetPathParam(r, "id")
	if id == "" {
		h.HandleError(ctx, w, errs.NewHTTPStatusError(http.StatusBadRequest, "Missing simulation id", nil))
		return
	}

	err := h.Svc.DeleteRun(ctx, id)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

// EncodedResponse writes run in one of the file formats
func (h *Handler) EncodedResponse(w http.ResponseWriter, r *http.Request, format procfile.Format, run *domain.SimulationRun) {
	var buf bytes.Buffer
	if err := procfile.Encode(&buf, format, run); err != nil {
		h.HandleError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// onlyAlgorithms returns run itself when algs is empty, else a filtered copy
func onlyAlgorithms(run *domain.SimulationRun, algs []domain.Algorithm) *domain.SimulationRun {
	if len(algs) == 0 {
		return run
	}
	filtered := *run
	filtered.Simulation = run.Simulation.Only(algs...)
	return &filtered
}
