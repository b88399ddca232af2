package project

// Status codes reported by the backend, in pipeline order.
const (
	StatusPending           = "PENDING"
	StatusAnalysisPending   = "ANALYSIS_PENDING"
	StatusAnalysisComplete  = "ANALYSIS_COMPLETE"
	StatusDesignPending     = "DESIGN_PENDING"
	StatusDesignComplete    = "DESIGN_COMPLETE"
	StatusCodeGeneration    = "CODE_GENERATION"
	StatusQAPending         = "QA_PENDING"
	StatusQAComplete        = "QA_COMPLETE"
	StatusDeploymentPending = "DEPLOYMENT_PENDING"
	StatusCompleted         = "COMPLETED"
	StatusFailed            = "FAILED"
)

// statusProgress maps every backend status code to its percent. FAILED maps
// to 0: a failed build resets the bar.
var statusProgress = map[string]int{
	StatusPending:           0,
	StatusAnalysisPending:   10,
	StatusAnalysisComplete:  20,
	StatusDesignPending:     30,
	StatusDesignComplete:    40,
	StatusCodeGeneration:    50,
	StatusQAPending:         60,
	StatusQAComplete:        70,
	StatusDeploymentPending: 80,
	StatusCompleted:         100,
	StatusFailed:            0,
}

// processingStatuses are the codes during which the backend is actively
// working and chat input should be held back.
var processingStatuses = map[string]bool{
	StatusAnalysisPending:   true,
	StatusDesignPending:     true,
	StatusCodeGeneration:    true,
	StatusQAPending:         true,
	StatusDeploymentPending: true,
}

// Progress returns the tabulated percent for a status code; unknown codes
// derive 0.
func Progress(status string) int {
	return statusProgress[status]
}

// IsProcessing reports whether a status code is an active pipeline stage.
func IsProcessing(status string) bool {
	return processingStatuses[status]
}

// IsTerminal reports whether a status ends active processing.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// Phase is a (status line, percent) pair shown when a pipeline task starts
// or completes.
type Phase struct {
	StatusMessage string
	Progress      int
}

// Pipeline stage names as they appear in task_started/task_completed frames.
const (
	TaskMarketAnalysis   = "Market Analysis"
	TaskUIUXDesign       = "UI/UX Design"
	TaskCodeGeneration   = "Code Generation"
	TaskQualityAssurance = "Quality Assurance"
	TaskSecurityAnalysis = "Security Analysis"
	TaskDeployment       = "Deployment"
)

var startPhases = map[string]Phase{
	TaskMarketAnalysis:   {"Analyzing market and target user...", 10},
	TaskUIUXDesign:       {"Creating UI/UX design...", 30},
	TaskCodeGeneration:   {"Generating application source code...", 50},
	TaskQualityAssurance: {"Performing automated QA checks...", 60},
	TaskSecurityAnalysis: {"Performing cybersecurity audit...", 70},
	TaskDeployment:       {"Deploying application to Amazon S3...", 80},
}

var completionPhases = map[string]Phase{
	TaskMarketAnalysis:   {"Market analysis complete. Ready for design.", 20},
	TaskUIUXDesign:       {"Design complete. Ready for code generation.", 40},
	TaskCodeGeneration:   {"Code generation finished. Pending QA.", 60},
	TaskQualityAssurance: {"QA checks passed. Ready for deployment.", 70},
	TaskSecurityAnalysis: {"Security audit passed. Ready for deployment.", 80},
	TaskDeployment:       {"Deployment successful! Your app is now available.", 100},
}

// StartPhase returns the status line and percent for a task that just
// started. Task names outside the pipeline report ok=false and leave the
// caller's status untouched.
func StartPhase(taskName string) (Phase, bool) {
	p, ok := startPhases[taskName]
	return p, ok
}

// CompletionPhase returns the status line and percent for a task that just
// finished.
func CompletionPhase(taskName string) (Phase, bool) {
	p, ok := completionPhases[taskName]
	return p, ok
}
