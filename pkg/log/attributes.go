package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model, e.g. "LogisticRegression".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed ("fit", "predict", ...).
	OperationKey = "ml.operation"

	// ComponentKey identifies the package doing the work ("linear", "tree").
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase ("training", "testing").
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
)

// Metrics and training progress.
const (
	DurationMsKey = "perf.duration_ms"
	AccuracyKey   = "metrics.accuracy"
	LossKey       = "metrics.loss"
	R2ScoreKey    = "metrics.r2_score"
	EpochKey      = "training.epoch"

	// DepthKey records the depth of an induced decision tree.
	DepthKey = "tree.depth"
	// LeavesKey records the number of leaves of an induced decision tree.
	LeavesKey = "tree.leaves"
)

// Hyperparameters.
const (
	LearningRateKey = "hyperparams.learning_rate"
	EpochsKey       = "hyperparams.epochs"
	MaxDepthKey     = "hyperparams.max_depth"
	TestSizeKey     = "hyperparams.test_size"
	RandomSeedKey   = "config.random_seed"
)

// Error context.
const (
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationSplit   = "split"
	OperationScore   = "score"

	PhaseTraining = "training"
	PhaseTesting  = "testing"
)
