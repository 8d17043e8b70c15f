package model

import "time"

// Match event kinds
const (
	MatchKindPhrases = "phrases"
	MatchKindActions = "actions"
)

// MatchEvent represents a single batch matching request for analytics tracking
type MatchEvent struct {
	ScriptID     string        `json:"script_id"`
	Kind         string        `json:"kind"`               // "phrases" or "actions"
	Strategy     string        `json:"strategy,omitempty"` // phrase strategy, empty for actions
	FileCount    int           `json:"file_count"`
	MatchedCount int           `json:"matched_count"`
	ScoreSum     float64       `json:"score_sum"` // sum of accuracies or similarities of matched files
	ResponseTime time.Duration `json:"response_time"`
	Timestamp    time.Time     `json:"timestamp"`
}

// ScriptUsage represents matching statistics for a specific script
type ScriptUsage struct {
	ScriptID      string `json:"script_id"`
	RequestCount  int    `json:"request_count"`
	FilesMatched  int    `json:"files_matched"`
	FilesReceived int    `json:"files_received"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To25ms      int     `json:"bucket_0_25ms"`
	Bucket25To100ms    int     `json:"bucket_25_100ms"`
	Bucket100To500ms   int     `json:"bucket_100_500ms"`
	Bucket500msPlus    int     `json:"bucket_500ms_plus"`
	Percentage0To25    float64 `json:"percentage_0_25"`
	Percentage25To100  float64 `json:"percentage_25_100"`
	Percentage100To500 float64 `json:"percentage_100_500"`
	Percentage500Plus  float64 `json:"percentage_500_plus"`
}

// StrategyStats counts phrase requests per matching strategy
type StrategyStats struct {
	Stream      int `json:"stream"`
	Combination int `json:"combination"`
}

// MatchPerformanceHourly represents hourly matching performance data
type MatchPerformanceHourly struct {
	Hour            int   `json:"hour"`
	RequestCount    int   `json:"request_count"`
	AvgResponseTime int64 `json:"avg_response_time"` // in milliseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics, last 24 hours
	PhraseRequests       int     `json:"phrase_requests"`
	ActionRequests       int     `json:"action_requests"`
	FilesProcessed       int     `json:"files_processed"`
	PhraseAcceptanceRate float64 `json:"phrase_acceptance_rate"`
	ActionAcceptanceRate float64 `json:"action_acceptance_rate"`
	AvgPhraseAccuracy    float64 `json:"avg_phrase_accuracy"`
	AvgActionSimilarity  float64 `json:"avg_action_similarity"`
	AvgResponseTime      int64   `json:"avg_response_time"` // in milliseconds
	ActiveScripts        int     `json:"active_scripts"`

	// Detailed analytics
	MatchPerformance24h      []MatchPerformanceHourly `json:"match_performance_24h"`
	ScriptUsage              []ScriptUsage            `json:"script_usage"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
	Strategies               StrategyStats            `json:"strategies"`
}
