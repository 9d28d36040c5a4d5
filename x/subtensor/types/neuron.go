package types

// Neuron is the per-uid participant record. Fractional metrics (rank, trust,
// consensus, incentive, dividends) are stored as x / MaxUint64.
type Neuron struct {
	Uid        uint32   `json:"uid"`
	Hotkey     string   `json:"hotkey"`
	Coldkey    string   `json:"coldkey"`
	Active     uint32   `json:"active"`
	LastUpdate uint64   `json:"last_update"`
	Priority   uint64   `json:"priority"`
	Stake      uint64   `json:"stake"`
	Rank       uint64   `json:"rank"`
	Trust      uint64   `json:"trust"`
	Consensus  uint64   `json:"consensus"`
	Incentive  uint64   `json:"incentive"`
	Dividends  uint64   `json:"dividends"`
	Emission   uint64   `json:"emission"`
	Axon       AxonInfo `json:"axon"`
}

// NewNeuron returns a freshly registered neuron with zeroed metrics.
func NewNeuron(uid uint32, hotkey, coldkey string, block uint64) Neuron {
	return Neuron{
		Uid:        uid,
		Hotkey:     hotkey,
		Coldkey:    coldkey,
		Active:     1,
		LastUpdate: block,
	}
}

// AxonInfo is the endpoint a neuron serves on.
type AxonInfo struct {
	Version  uint32 `json:"version"`
	Ip       string `json:"ip"`
	Port     uint32 `json:"port"`
	IpType   uint32 `json:"ip_type"`
	Modality uint32 `json:"modality"`
}

const (
	IpTypeV4 = 4
	IpTypeV6 = 6

	// text is the only modality served
	ModalityText = 0
)

type WeightEntry struct {
	Uid    uint32 `json:"uid"`
	Weight uint32 `json:"weight"`
}

// WeightRow is a sparse outgoing weight row, sorted by uid with no zero entries.
type WeightRow []WeightEntry

type BondEntry struct {
	Uid  uint32 `json:"uid"`
	Bond uint64 `json:"bond"`
}

// BondRow is a sparse bond row, sorted by uid. Missing uids have a zero bond.
type BondRow []BondEntry

// WithoutUid returns the row minus any entry targeting uid.
func (r WeightRow) WithoutUid(uid uint32) WeightRow {
	out := make(WeightRow, 0, len(r))
	for _, e := range r {
		if e.Uid != uid {
			out = append(out, e)
		}
	}
	return out
}

// WithoutUid returns the row minus any entry targeting uid.
func (r BondRow) WithoutUid(uid uint32) BondRow {
	out := make(BondRow, 0, len(r))
	for _, e := range r {
		if e.Uid != uid {
			out = append(out, e)
		}
	}
	return out
}
