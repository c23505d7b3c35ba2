package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"budget-control/internal/api/models"
	"budget-control/internal/config"
	"budget-control/internal/model"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler serves the scenario YAML files of a directory
type ScenarioHandler struct {
	dir string
}

// NewScenarioHandler creates a scenario handler over dir (SCENARIO_DIR,
// default ./examples/scenarios).
func NewScenarioHandler(dir string) *ScenarioHandler {
	if dir == "" {
		dir = filepath.Join("examples", "scenarios")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Printf("ScenarioHandler: Using scenario directory: %s", dir)
	return &ScenarioHandler{dir: dir}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scenarios := []models.ScenarioInfo{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		log.Printf("ScenarioHandler: Failed to read scenario directory %s: %v", h.dir, err)
		c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(h.dir, entry.Name())
		cfg, err := config.LoadUnchecked(path)
		if err != nil {
			log.Printf("ScenarioHandler: Skipping %s: %v", path, err)
			continue
		}
		scenarios = append(scenarios, scenarioInfo(entry.Name(), cfg))
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

// GetScenario handles GET /api/v1/scenarios/:id and returns the validated scenario
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	scenarioID := c.Param("id")
	if scenarioID == "" || strings.ContainsAny(scenarioID, `/\`) || strings.Contains(scenarioID, "..") {
		respondError(c, "GetScenario", model.Invalid("id", "invalid scenario id %q", scenarioID))
		return
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(h.dir, scenarioID+ext)
		cfg, err := config.Load(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			respondError(c, "GetScenario", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scenario": scenarioInfo(filepath.Base(path), cfg),
			"config":   cfg,
		})
		return
	}
	notFound(c, fmt.Sprintf("scenario %s not found", scenarioID))
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func scenarioInfo(filename string, cfg *config.Config) models.ScenarioInfo {
	scenarioID := strings.TrimSuffix(filename, filepath.Ext(filename))
	name := cfg.Name
	if name == "" {
		name = scenarioID
	}
	info := models.ScenarioInfo{ID: scenarioID, Name: name, File: filename, Sections: []string{}}
	if len(cfg.Trend.History) > 0 || cfg.Trend.SeriesFile != "" {
		info.Sections = append(info.Sections, "trend")
	}
	if cfg.Seasonality.Cycle > 0 || len(cfg.Seasonality.Seasons) > 0 {
		info.Sections = append(info.Sections, "seasonality")
	}
	if cfg.EOQ != nil {
		info.Sections = append(info.Sections, "eoq")
	}
	if len(cfg.Investment.Projects) > 0 {
		info.Sections = append(info.Sections, "investment")
	}
	if cfg.HasTreasury() {
		info.Sections = append(info.Sections, "treasury")
	}
	if len(cfg.ABC.Items) > 0 {
		info.Sections = append(info.Sections, "abc")
	}
	if cfg.Production.IsSet() {
		info.Sections = append(info.Sections, "production")
	}
	return info
}
