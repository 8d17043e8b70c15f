// Package analytics records one event per matching batch and aggregates them
// into a dashboard.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/AndrewOch/ClapperRoughCutBackend/config"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
)

const (
	// DataFileName is the analytics file name inside the data directory.
	DataFileName    = "analytics.json"
	maxEventsToKeep = 10000 // Keep last 10k events for performance
)

// ScriptLister reports the scripts currently loaded.
type ScriptLister interface {
	ListScripts() []model.ScriptInfo
}

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.MatchEvent
	scripts      ScriptLister
	dataFilePath string // empty keeps events in memory only
	logger       *slog.Logger
	now          func() time.Time
}

// NewService creates a new analytics service. When dataFilePath is set,
// previously saved events are loaded from it.
func NewService(scripts ScriptLister, dataFilePath string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	service := &Service{
		events:       make([]model.MatchEvent, 0),
		scripts:      scripts,
		dataFilePath: dataFilePath,
		logger:       logger.With("component", "analytics"),
		now:          time.Now,
	}

	if err := service.loadData(); err != nil {
		service.logger.Warn("failed to load analytics data", "path", dataFilePath, "error", err)
	}

	return service
}

// TrackMatchEvent records a new matching event. A zero timestamp is set to now.
func (s *Service) TrackMatchEvent(event model.MatchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// EventCount returns the number of buffered events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData aggregates the events of the last 24 hours.
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	last24h := filterEventsByTime(s.events, s.now().Add(-24*time.Hour))

	var phrases, actions []model.MatchEvent
	filesProcessed := 0
	for _, event := range last24h {
		filesProcessed += event.FileCount
		switch event.Kind {
		case model.MatchKindPhrases:
			phrases = append(phrases, event)
		case model.MatchKindActions:
			actions = append(actions, event)
		}
	}

	return model.AnalyticsDashboard{
		PhraseRequests:           len(phrases),
		ActionRequests:           len(actions),
		FilesProcessed:           filesProcessed,
		PhraseAcceptanceRate:     calculateAcceptanceRate(phrases),
		ActionAcceptanceRate:     calculateAcceptanceRate(actions),
		AvgPhraseAccuracy:        calculateAvgScore(phrases),
		AvgActionSimilarity:      calculateAvgScore(actions),
		AvgResponseTime:          calculateAvgResponseTime(last24h),
		ActiveScripts:            s.getActiveScriptsCount(),
		MatchPerformance24h:      getHourlyPerformance(last24h),
		ScriptUsage:              getScriptUsage(last24h),
		ResponseTimeDistribution: getResponseTimeDistribution(last24h),
		Strategies:               getStrategyStats(phrases),
	}
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.MatchEvent, after time.Time) []model.MatchEvent {
	var filtered []model.MatchEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAcceptanceRate is the share of received files that got a match, in percent.
func calculateAcceptanceRate(events []model.MatchEvent) float64 {
	files, matched := 0, 0
	for _, event := range events {
		files += event.FileCount
		matched += event.MatchedCount
	}
	if files == 0 {
		return 0
	}
	return float64(matched) / float64(files) * 100
}

// calculateAvgScore averages the accuracy or similarity over matched files.
func calculateAvgScore(events []model.MatchEvent) float64 {
	matched := 0
	var sum float64
	for _, event := range events {
		matched += event.MatchedCount
		sum += event.ScoreSum
	}
	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.MatchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Milliseconds()
}

func (s *Service) getActiveScriptsCount() int {
	if s.scripts == nil {
		return 0
	}
	return len(s.scripts.ListScripts())
}

// getHourlyPerformance returns hourly matching performance for the last 24 hours
func getHourlyPerformance(events []model.MatchEvent) []model.MatchPerformanceHourly {
	hourlyData := make(map[int][]model.MatchEvent)
	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.MatchPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		events := hourlyData[hour]
		performance = append(performance, model.MatchPerformanceHourly{
			Hour:            hour,
			RequestCount:    len(events),
			AvgResponseTime: calculateAvgResponseTime(events),
		})
	}
	return performance
}

// getScriptUsage returns per-script request counts, busiest first.
func getScriptUsage(events []model.MatchEvent) []model.ScriptUsage {
	byScript := make(map[string]*model.ScriptUsage)
	for _, event := range events {
		usage, ok := byScript[event.ScriptID]
		if !ok {
			usage = &model.ScriptUsage{ScriptID: event.ScriptID}
			byScript[event.ScriptID] = usage
		}
		usage.RequestCount++
		usage.FilesReceived += event.FileCount
		usage.FilesMatched += event.MatchedCount
	}

	usage := make([]model.ScriptUsage, 0, len(byScript))
	for _, u := range byScript {
		usage = append(usage, *u)
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].RequestCount != usage[j].RequestCount {
			return usage[i].RequestCount > usage[j].RequestCount
		}
		return usage[i].ScriptID < usage[j].ScriptID
	})
	return usage
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.MatchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)
	if total == 0 {
		return dist
	}

	for _, event := range events {
		ms := event.ResponseTime.Milliseconds()
		switch {
		case ms <= 25:
			dist.Bucket0To25ms++
		case ms <= 100:
			dist.Bucket25To100ms++
		case ms <= 500:
			dist.Bucket100To500ms++
		default:
			dist.Bucket500msPlus++
		}
	}

	dist.Percentage0To25 = float64(dist.Bucket0To25ms) / float64(total) * 100
	dist.Percentage25To100 = float64(dist.Bucket25To100ms) / float64(total) * 100
	dist.Percentage100To500 = float64(dist.Bucket100To500ms) / float64(total) * 100
	dist.Percentage500Plus = float64(dist.Bucket500msPlus) / float64(total) * 100
	return dist
}

// getStrategyStats counts phrase requests per strategy
func getStrategyStats(events []model.MatchEvent) model.StrategyStats {
	stats := model.StrategyStats{}
	for _, event := range events {
		switch event.Strategy {
		case config.StrategyStream:
			stats.Stream++
		case config.StrategyCombination:
			stats.Combination++
		}
	}
	return stats
}

// Save writes the buffered events to the data file, if one is configured.
func (s *Service) Save() error {
	if s.dataFilePath == "" {
		return nil
	}

	s.mutex.RLock()
	data, err := json.MarshalIndent(s.events, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	dir := filepath.Dir(s.dataFilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}
	if err := os.WriteFile(s.dataFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}
	return nil
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil // File doesn't exist yet, that's okay
	}
	if err != nil {
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	var events []model.MatchEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	if len(events) > maxEventsToKeep {
		events = events[len(events)-maxEventsToKeep:]
	}
	s.events = events
	return nil
}
