package metrics

const (
	WEIGHTS_SET_EVENT       = "weights_set_event"
	NEURON_REGISTERED_EVENT = "neuron_registered_event"
	AXON_SERVED_EVENT       = "axon_served_event"
	STAKE_ADDED_EVENT       = "stake_added_event"
	STAKE_REMOVED_EVENT     = "stake_removed_event"
	PARAM_SET_EVENT         = "param_set_event"
	RESET_BONDS_EVENT       = "reset_bonds_event"
	STEP_EVENT              = "mechanism_step_event"
)
