package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/timeutil"
)

// DefaultLeadersLimit is used when /leaders is called without a limit.
const DefaultLeadersLimit = 5

type nowFunc func() time.Time

// Handler wires HTTP routes to the league.
type Handler struct {
	league *league.League
	logger *slog.Logger
	now    nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(l *league.League, logger *slog.Logger) *Handler {
	return &Handler{
		league: l,
		logger: logger,
		now:    time.Now,
	}
}

// Register attaches the league routes to r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/teams", h.ListTeams).Methods(http.MethodGet)
	r.HandleFunc("/teams", h.CreateTeam).Methods(http.MethodPost)
	r.HandleFunc("/teams/{name}", h.GetTeam).Methods(http.MethodGet)
	r.HandleFunc("/teams/{name}/matches", h.TeamMatches).Methods(http.MethodGet)
	r.HandleFunc("/teams/{name}/players", h.AddPlayer).Methods(http.MethodPost)

	r.HandleFunc("/players", h.ListPlayers).Methods(http.MethodGet)
	r.HandleFunc("/players/{name}", h.GetPlayer).Methods(http.MethodGet)
	r.HandleFunc("/players/{name}/statistics", h.RecordStatistic).Methods(http.MethodPost)
	r.HandleFunc("/players/{name}/transfer", h.TransferPlayer).Methods(http.MethodPost)

	r.HandleFunc("/matches", h.ListMatches).Methods(http.MethodGet)
	r.HandleFunc("/matches", h.CreateMatch).Methods(http.MethodPost)

	r.HandleFunc("/standings", h.Standings).Methods(http.MethodGet)
	r.HandleFunc("/leaders", h.Leaders).Methods(http.MethodGet)
	r.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/consistency", h.Consistency).Methods(http.MethodGet)
	r.HandleFunc("/consistency/repair", h.RepairOrphans).Methods(http.MethodPost)
	r.HandleFunc("/compare", h.Compare).Methods(http.MethodGet)
	r.HandleFunc("/trends", h.Trends).Methods(http.MethodGet)
	r.HandleFunc("/struggling", h.Struggling).Methods(http.MethodGet)
	r.HandleFunc("/document", h.Document).Methods(http.MethodGet)
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"teams": h.league.Teams()}, h.logger)
}

type createTeamRequest struct {
	Name string `json:"name"`
	City string `json:"city"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	team, err := h.league.AddTeam(req.Name, req.City)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	h.respondTeam(w, r, http.StatusCreated, team.Name())
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	h.respondTeam(w, r, http.StatusOK, mux.Vars(r)["name"])
}

func (h *Handler) TeamMatches(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if _, ok := h.league.FindTeam(name); !ok {
		writeError(w, r, http.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"team":    name,
		"matches": h.league.TeamMatches(name),
	}, h.logger)
}

type addPlayerRequest struct {
	Name      string `json:"name"`
	Origin    string `json:"origin"`
	StartYear int    `json:"startYear"`
	Position  string `json:"position"`
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	position, err := players.ParsePosition(req.Position)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	p, err := h.league.AddPlayerToTeam(mux.Vars(r)["name"], req.Name, req.Origin, req.StartYear, position)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	h.respondPlayer(w, r, http.StatusCreated, p.Name())
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"players": h.league.Players()}, h.logger)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	h.respondPlayer(w, r, http.StatusOK, mux.Vars(r)["name"])
}

type statisticRequest struct {
	Minutes  float64 `json:"minutes"`
	Points   int     `json:"points"`
	Assists  int     `json:"assists"`
	Rebounds int     `json:"rebounds"`
	Date     string  `json:"date"`
}

func (h *Handler) RecordStatistic(w http.ResponseWriter, r *http.Request) {
	var req statisticRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	date, err := h.statisticDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected "+timeutil.DateFormatHint+")", h.logger)
		return
	}
	name := mux.Vars(r)["name"]
	if _, err := h.league.RecordStatistic(name, req.Minutes, req.Points, req.Assists, req.Rebounds, date); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	h.respondPlayer(w, r, http.StatusCreated, name)
}

// statisticDate accepts YYYY-MM-DD or RFC3339 and defaults to today.
func (h *Handler) statisticDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return timeutil.CalendarDate(h.now().UTC()), nil
	}
	if d, err := timeutil.ParseDate(raw); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, raw)
}

type transferRequest struct {
	Team string `json:"team"`
}

func (h *Handler) TransferPlayer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	name := mux.Vars(r)["name"]
	if err := h.league.TransferPlayer(name, req.Team); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	h.respondPlayer(w, r, http.StatusOK, name)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"matches": h.league.Matches()}, h.logger)
}

type createMatchRequest struct {
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Date      string `json:"date"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	m, err := h.league.AddMatch(req.HomeTeam, req.AwayTeam, req.HomeScore, req.AwayScore, req.Date)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, league.NewMatchView(m), h.logger)
}

func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"standings": h.league.Standings()}, h.logger)
}

// Leaders serves the top players for ?metric= (points by default) capped at ?limit=.
func (h *Handler) Leaders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := DefaultLeadersLimit
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		limit = parsed
	}
	metric := league.ParseMetric(query.Get("metric"))
	writeJSON(w, http.StatusOK, map[string]any{
		"metric":  metric,
		"limit":   limit,
		"players": h.league.TopPlayers(string(metric), limit),
	}, h.logger)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.league.SystemStats(), h.logger)
}

func (h *Handler) Consistency(w http.ResponseWriter, r *http.Request) {
	issues := h.league.ValidateConsistency()
	writeJSON(w, http.StatusOK, map[string]any{
		"consistent": len(issues) == 0,
		"issues":     issues,
	}, h.logger)
}

func (h *Handler) RepairOrphans(w http.ResponseWriter, r *http.Request) {
	repaired := h.league.RepairOrphans()
	issues := h.league.ValidateConsistency()
	logging.Info(loggerFromContext(r, h.logger), "orphan repair requested",
		logging.FieldCount, repaired,
		"remaining_issues", len(issues),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"repaired":   repaired,
		"consistent": len(issues) == 0,
		"issues":     issues,
	}, h.logger)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	a, b := strings.TrimSpace(query.Get("teamA")), strings.TrimSpace(query.Get("teamB"))
	if a == "" || b == "" {
		writeError(w, r, http.StatusBadRequest, "teamA and teamB are required", h.logger)
		return
	}
	h2h, err := h.league.HeadToHead(a, b)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h2h, h.logger)
}

func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.league.Trends(), h.logger)
}

// Struggling lists teams under ?threshold= percent (default 40).
func (h *Handler) Struggling(w http.ResponseWriter, r *http.Request) {
	var threshold float64
	if raw := strings.TrimSpace(r.URL.Query().Get("threshold")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid threshold", h.logger)
			return
		}
		threshold = parsed
	}
	writeJSON(w, http.StatusOK, h.league.StrugglingTeams(threshold), h.logger)
}

func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.league.Document(), h.logger)
}

func (h *Handler) respondTeam(w http.ResponseWriter, r *http.Request, status int, name string) {
	detail, err := h.league.TeamDetail(name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, status, detail, h.logger)
}

func (h *Handler) respondPlayer(w http.ResponseWriter, r *http.Request, status int, name string) {
	view, err := h.league.PlayerDetail(name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, status, view, h.logger)
}
