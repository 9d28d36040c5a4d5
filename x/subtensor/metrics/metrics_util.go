package metrics

import (
	"strconv"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	metrics "github.com/hashicorp/go-metrics"
)

// Measures the time taken by one mechanism step
// Metric Names:
//
//	subtensor_step_duration_milliseconds
//	subtensor_step_duration_milliseconds_count
//	subtensor_step_duration_milliseconds_sum
func MeasureStepDuration(start time.Time, neurons uint32) {
	metrics.MeasureSinceWithLabels(
		[]string{"subtensor", "step", "duration", "milliseconds"},
		start.UTC(),
		[]metrics.Label{telemetry.NewLabel("neurons", strconv.FormatUint(uint64(neurons), 10))},
	)
}

// Counts the tokens emitted by the mechanism step
// Metric Name:
//
//	subtensor_step_emission
func IncrStepEmission(amount uint64) {
	telemetry.IncrCounter(float32(amount), "subtensor", "step", "emission")
}

// Current registration difficulty
// Metric Name:
//
//	subtensor_difficulty
func SetDifficulty(difficulty uint64) {
	telemetry.SetGauge(float32(difficulty), "subtensor", "difficulty")
}

// Registered neuron count
// Metric Name:
//
//	subtensor_neurons
func SetNeuronCount(n uint32) {
	telemetry.SetGauge(float32(n), "subtensor", "neurons")
}

// Counts registrations rejected by the admission checks, labelled by reason
// Metric Name:
//
//	subtensor_registration_rejected_count
func IncrRegistrationRejected(reason string) {
	telemetry.IncrCounterWithLabels(
		[]string{"subtensor", "registration", "rejected", "count"},
		1,
		[]metrics.Label{telemetry.NewLabel("reason", reason)},
	)
}

// IncrProducerEventCount increments the counter for events produced.
// Metric Name:
//
//	subtensor_event_produce_count
func IncrProducerEventCount(msgType string) {
	telemetry.IncrCounterWithLabels(
		[]string{"subtensor", "event", "produce", "count"},
		1,
		[]metrics.Label{telemetry.NewLabel("msg_type", msgType)},
	)
}
