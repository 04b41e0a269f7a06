// Package log defines standard attribute keys for booster and dataset operations.
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of object emitting the entry.
	// Examples: "Booster", "Dataset"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific handle owner.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies the logger name of the emitting package.
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of output classes of a model.
	ClassesKey = "data.classes"

	// PathKey records the file a model or dataset was read from or written to.
	PathKey = "data.path"
)

// Training Progress
const (
	// IterationKey records the current boosting round.
	IterationKey = "training.iteration"

	// IterationsKey records the total number of boosting rounds requested or loaded.
	IterationsKey = "training.iterations"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// PredsKey indicates the number of prediction values produced.
	PredsKey = "preds.count"
)

// Native Boundary Context
const (
	// NativeCallKey names the C API entry point involved.
	NativeCallKey = "native.call"

	// NativeStatusKey records the integer status returned by the entry point.
	NativeStatusKey = "native.status"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute value constants for common operations.
const (
	OperationTrain      = "train"
	OperationUpdate     = "update"
	OperationLoad       = "load"
	OperationSave       = "save"
	OperationPredict    = "predict"
	OperationFree       = "free"
	OperationConstruct  = "construct"
	OperationImportance = "importance"
)
