package types

import (
	"os"

	"cosmossdk.io/errors"
	"github.com/pelletier/go-toml/v2"
)

// GenesisNeuron seeds the registry at genesis. Neurons are assigned uids in order.
type GenesisNeuron struct {
	Hotkey  string `json:"hotkey" toml:"hotkey"`
	Coldkey string `json:"coldkey" toml:"coldkey"`
	Stake   uint64 `json:"stake" toml:"stake"`
}

type GenesisState struct {
	Params        Params          `json:"params" toml:"params"`
	Difficulty    uint64          `json:"difficulty" toml:"difficulty"`
	TotalIssuance uint64          `json:"total_issuance" toml:"total_issuance"`
	Neurons       []GenesisNeuron `json:"neurons" toml:"neurons"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Difficulty: DefaultDifficulty,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if uint64(len(gs.Neurons)) > gs.Params.MaxAllowedUids {
		return errors.Wrapf(ErrInvalidGenesis, "%d neurons exceed max_allowed_uids %d", len(gs.Neurons), gs.Params.MaxAllowedUids)
	}
	seen := make(map[string]struct{}, len(gs.Neurons))
	for i, n := range gs.Neurons {
		if err := validateAddress("hotkey", n.Hotkey); err != nil {
			return errors.Wrapf(ErrInvalidGenesis, "neuron %d: %s", i, err)
		}
		if err := validateAddress("coldkey", n.Coldkey); err != nil {
			return errors.Wrapf(ErrInvalidGenesis, "neuron %d: %s", i, err)
		}
		if _, ok := seen[n.Hotkey]; ok {
			return errors.Wrapf(ErrInvalidGenesis, "hotkey %s listed twice", n.Hotkey)
		}
		seen[n.Hotkey] = struct{}{}
	}
	return nil
}

// ReadGenesisTOML loads a genesis file. Params missing from the file keep their
// default values.
func ReadGenesisTOML(path string) (*GenesisState, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "while opening genesis toml")
	}
	defer file.Close()

	gs := DefaultGenesis()
	err = toml.NewDecoder(file).Decode(gs)
	if err != nil {
		return nil, errors.Wrap(err, "while decoding genesis toml")
	}
	return gs, nil
}

// MarshalGenesisTOML renders gs in the format ReadGenesisTOML accepts.
func MarshalGenesisTOML(gs *GenesisState) ([]byte, error) {
	bz, err := toml.Marshal(gs)
	if err != nil {
		return nil, errors.Wrap(err, "while encoding genesis toml")
	}
	return bz, nil
}
