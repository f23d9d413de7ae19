package types

type RunMode string

const (
	// ModeLocal runs the API server, the health monitor, and the telemetry
	// consumer in a single process
	ModeLocal RunMode = "local"
	// ModeAPI runs the API server and health monitor without consuming the
	// telemetry stream
	ModeAPI RunMode = "api"
	// ModeConsumer runs only the telemetry consumer
	ModeConsumer RunMode = "consumer"
	// ModeAWSLambdaAPI serves the API through the Lambda adapter, priming
	// agent health once at cold start
	ModeAWSLambdaAPI RunMode = "aws_lambda_api"
	// ModeAWSLambdaConsumer processes Kafka event batches delivered to Lambda
	ModeAWSLambdaConsumer RunMode = "aws_lambda_consumer"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
