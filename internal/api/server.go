// Package api provides a read-only, non-authoritative dev HTTP server over
// internal/sim.Environment (SPEC_FULL.md §6.4). It is never on the step
// hot path — the host-facing path is the FFI surface only (internal/ffi).
// GET endpoints mirror the teacher's read-only API-server shape
// (tobyjaguar-mini-world/internal/api): a ServeMux, per-IP rate limiters on
// every endpoint (a tighter one for the expensive render endpoint), a
// writeJSON helper, and a loopback-bound
// ListenAndServe goroutine.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"github.com/talgya/tribal-sim/internal/sim"
	"github.com/talgya/tribal-sim/internal/worldgrid"
)

// Server serves read-only views of a running sim.Environment.
type Server struct {
	Env  *sim.Environment
	Port int
}

// Start begins serving the dev HTTP API in a goroutine, bound to loopback
// only (SPEC_FULL.md §6.4: "reachable over a loopback-bound listener during
// development").
func (s *Server) Start() {
	renderLimiter := NewRateLimiter(ExpensiveEndpointRate, rateLimiterWindow)
	readLimiter := NewRateLimiter(CheapEndpointRate, rateLimiterWindow)

	mux := http.NewServeMux()
	mux.HandleFunc("/status", RateLimitMiddleware(readLimiter, s.handleStatus))
	mux.HandleFunc("/agents", RateLimitMiddleware(readLimiter, s.handleAgents))
	mux.HandleFunc("/teams", RateLimitMiddleware(readLimiter, s.handleTeams))
	mux.HandleFunc("/stats", RateLimitMiddleware(readLimiter, s.handleStats))
	mux.HandleFunc("/render.ansi", RateLimitMiddleware(renderLimiter, s.handleRenderANSI))

	addr := fmt.Sprintf("127.0.0.1:%d", s.Port)
	slog.Info("dev HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("dev HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	aliveAgents := 0
	for _, a := range s.Env.Map.Agents {
		if a != nil && !a.Terminated {
			aliveAgents++
		}
	}
	status := map[string]any{
		"currentStep":  s.Env.CurrentStep,
		"maxSteps":     s.Env.Cfg.MaxSteps,
		"simTime":      strftime.Format("%Y-%m-%d %H:%M:%S", time.Unix(s.Env.CurrentStep, 0).UTC()),
		"mapWidth":     sim.MapWidth,
		"mapHeight":    sim.MapHeight,
		"numTeams":     sim.MaxTeams,
		"aliveAgents":  aliveAgents,
		"hasError":     s.Env.HasError(),
	}
	writeJSON(w, status)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	type agentSummary struct {
		AgentID   int32  `json:"agentId"`
		TeamID    int8   `json:"teamId"`
		X         int32  `json:"x"`
		Y         int32  `json:"y"`
		HP        int32  `json:"hp"`
		MaxHP     int32  `json:"maxHp"`
		UnitClass string `json:"unitClass"`
		Stance    string `json:"stance"`
	}

	var out []agentSummary
	for _, a := range s.Env.Map.Agents {
		if a == nil || a.Terminated {
			continue
		}
		out = append(out, agentSummary{
			AgentID:   a.AgentID,
			TeamID:    a.TeamID,
			X:         a.Pos.X,
			Y:         a.Pos.Y,
			HP:        a.HP,
			MaxHP:     a.MaxHP,
			UnitClass: unitClassName(a.UnitClass),
			Stance:    stanceName(a.Stance),
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	type teamSummary struct {
		ID             int8   `json:"id"`
		Stockpile      string `json:"stockpileSummary"`
		TerritoryTiles int32  `json:"territoryTiles"`
		Difficulty     float32 `json:"difficulty"`
	}

	var out []teamSummary
	for _, team := range s.Env.Teams {
		if team == nil {
			continue
		}
		st := team.Stockpile
		summary := fmt.Sprintf("food=%s wood=%s stone=%s gold=%s water=%s",
			humanize.Comma(int64(st.Food)), humanize.Comma(int64(st.Wood)),
			humanize.Comma(int64(st.Stone)), humanize.Comma(int64(st.Gold)),
			humanize.Comma(int64(st.Water)))
		out = append(out, teamSummary{
			ID: team.ID, Stockpile: summary,
			TerritoryTiles: team.TerritoryTiles, Difficulty: team.Difficulty,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	type agentStatsView struct {
		AgentID int32          `json:"agentId"`
		Stats   sim.AgentStats `json:"stats"`
	}
	var out []agentStatsView
	for i, a := range s.Env.Map.Agents {
		if a == nil {
			continue
		}
		out = append(out, agentStatsView{AgentID: int32(i), Stats: s.Env.Stats[i]})
	}
	writeJSON(w, out)
}

// handleRenderANSI is the expensive, rate-limited endpoint (SPEC_FULL.md
// §6.4): a full-grid ANSI render written as plain text. colorize follows
// the teacher's go-isatty convention, applied here to the *response*
// writer's terminal-ness proxy: a "plain=1" query flag lets a curl/script
// client opt out of escape codes explicitly, since an HTTP response has no
// terminal of its own to detect.
func (s *Server) handleRenderANSI(w http.ResponseWriter, r *http.Request) {
	colorize := isatty.IsTerminal(0) // dev-server default: match the invoking shell
	if plain, err := strconv.ParseBool(r.URL.Query().Get("plain")); err == nil && plain {
		colorize = false
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, s.Env.RenderANSI(colorize))
}

func unitClassName(c worldgrid.UnitClass) string {
	switch c {
	case worldgrid.UnitVillager:
		return "Villager"
	case worldgrid.UnitMonk:
		return "Monk"
	case worldgrid.UnitArcher:
		return "Archer"
	case worldgrid.UnitSiege:
		return "Siege"
	case worldgrid.UnitManAtArms:
		return "ManAtArms"
	case worldgrid.UnitScout:
		return "Scout"
	default:
		return "Unknown"
	}
}

func stanceName(st worldgrid.Stance) string {
	switch st {
	case worldgrid.StanceAggressive:
		return "Aggressive"
	case worldgrid.StanceDefensive:
		return "Defensive"
	case worldgrid.StancePassive:
		return "Passive"
	case worldgrid.StanceNoAttack:
		return "NoAttack"
	default:
		return "Unknown"
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
