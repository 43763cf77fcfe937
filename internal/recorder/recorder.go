package recorder

// AnalysisRecord captures one served analysis for offline inspection.
type AnalysisRecord struct {
	ChatID  string
	Symbol  string
	Price   float64
	RSI     float64
	RSIOk   bool
	Rating  string
	Trigger string // "TEXT", "BUTTON", "DIGEST"
}

// Recorder persists served analyses.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	Close() error
}
