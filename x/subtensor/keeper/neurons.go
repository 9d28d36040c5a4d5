package keeper

import (
	"context"
	"errors"
	"math"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

/// NEURONS

func (k *Keeper) GetNeuron(ctx context.Context, uid Uid) (types.Neuron, error) {
	neuron, err := k.neurons.Get(ctx, uid)
	if errors.Is(err, collections.ErrNotFound) {
		return types.Neuron{}, errorsmod.Wrapf(types.ErrNeuronNotFound, "uid %d", uid)
	}
	return neuron, err
}

func (k *Keeper) SetNeuron(ctx context.Context, neuron types.Neuron) error {
	return k.neurons.Set(ctx, neuron.Uid, neuron)
}

func (k *Keeper) IsHotkeyRegistered(ctx context.Context, hotkey Hotkey) (bool, error) {
	return k.hotkeys.Has(ctx, hotkey)
}

// GetUidForHotkey fails with ErrNotRegistered for unknown hotkeys.
func (k *Keeper) GetUidForHotkey(ctx context.Context, hotkey Hotkey) (Uid, error) {
	uid, err := k.hotkeys.Get(ctx, hotkey)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, errorsmod.Wrapf(types.ErrNotRegistered, "hotkey %s", hotkey)
	}
	return uid, err
}

func (k *Keeper) GetNeuronForHotkey(ctx context.Context, hotkey Hotkey) (types.Neuron, error) {
	uid, err := k.GetUidForHotkey(ctx, hotkey)
	if err != nil {
		return types.Neuron{}, err
	}
	return k.GetNeuron(ctx, uid)
}

// GetAllNeurons returns every neuron ordered by uid.
func (k *Keeper) GetAllNeurons(ctx context.Context) ([]types.Neuron, error) {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return nil, err
	}
	neurons := make([]types.Neuron, n)
	for uid := Uid(0); uid < n; uid++ {
		neurons[uid], err = k.GetNeuron(ctx, uid)
		if err != nil {
			return nil, err
		}
	}
	return neurons, nil
}

// appendNeuron registers hotkey under the next free uid.
// The uid space is capped at MaxUint32 and running out of it is unrecoverable.
func (k *Keeper) appendNeuron(ctx context.Context, hotkey Hotkey, coldkey string, block BlockHeight) (Uid, error) {
	n, err := getOrDefault(ctx, k.neuronCount, 0)
	if err != nil {
		return 0, err
	}
	if n >= math.MaxUint32 {
		panic("subtensor: uid space exhausted")
	}
	uid := Uid(n)
	if err := k.neuronCount.Set(ctx, n+1); err != nil {
		return 0, err
	}
	if err := k.putNeuron(ctx, types.NewNeuron(uid, hotkey, coldkey, block), block); err != nil {
		return 0, err
	}
	return uid, nil
}

func (k *Keeper) putNeuron(ctx context.Context, neuron types.Neuron, block BlockHeight) error {
	if err := k.neurons.Set(ctx, neuron.Uid, neuron); err != nil {
		return err
	}
	if err := k.hotkeys.Set(ctx, neuron.Hotkey, neuron.Uid); err != nil {
		return err
	}
	return k.blockAtRegistration.Set(ctx, neuron.Uid, block)
}

func (k *Keeper) GetBlockAtRegistration(ctx context.Context, uid Uid) (BlockHeight, error) {
	block, err := k.blockAtRegistration.Get(ctx, uid)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return block, err
}

/// ROWS

func (k *Keeper) GetWeightRow(ctx context.Context, uid Uid) (types.WeightRow, error) {
	row, err := k.weights.Get(ctx, uid)
	if errors.Is(err, collections.ErrNotFound) {
		return types.WeightRow{}, nil
	}
	return row, err
}

func (k *Keeper) SetWeightRow(ctx context.Context, uid Uid, row types.WeightRow) error {
	if len(row) == 0 {
		return k.weights.Remove(ctx, uid)
	}
	return k.weights.Set(ctx, uid, row)
}

func (k *Keeper) GetBondRow(ctx context.Context, uid Uid) (types.BondRow, error) {
	row, err := k.bonds.Get(ctx, uid)
	if errors.Is(err, collections.ErrNotFound) {
		return types.BondRow{}, nil
	}
	return row, err
}

func (k *Keeper) SetBondRow(ctx context.Context, uid Uid, row types.BondRow) error {
	if len(row) == 0 {
		return k.bonds.Remove(ctx, uid)
	}
	return k.bonds.Set(ctx, uid, row)
}

/// METAGRAPH

// neuronVector maps every neuron in uid order through get.
func neuronVector[V any](ctx context.Context, k *Keeper, get func(types.Neuron) V) ([]V, error) {
	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]V, len(neurons))
	for i, neuron := range neurons {
		out[i] = get(neuron)
	}
	return out, nil
}

func (k *Keeper) GetStakes(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Stake })
}

func (k *Keeper) GetRanks(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Rank })
}

func (k *Keeper) GetTrust(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Trust })
}

func (k *Keeper) GetConsensus(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Consensus })
}

func (k *Keeper) GetIncentives(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Incentive })
}

func (k *Keeper) GetDividends(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Dividends })
}

func (k *Keeper) GetEmissions(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.Emission })
}

func (k *Keeper) GetActive(ctx context.Context) ([]uint32, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint32 { return n.Active })
}

func (k *Keeper) GetLastUpdates(ctx context.Context) ([]uint64, error) {
	return neuronVector(ctx, k, func(n types.Neuron) uint64 { return n.LastUpdate })
}

// GetWeights returns the dense N×N weight matrix.
func (k *Keeper) GetWeights(ctx context.Context) ([][]uint32, error) {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return nil, err
	}
	matrix := make([][]uint32, n)
	for uid := Uid(0); uid < n; uid++ {
		row, err := k.GetWeightRow(ctx, uid)
		if err != nil {
			return nil, err
		}
		matrix[uid] = make([]uint32, n)
		for _, e := range row {
			if e.Uid < n {
				matrix[uid][e.Uid] = e.Weight
			}
		}
	}
	return matrix, nil
}

// GetBonds returns the dense N×N bond matrix.
func (k *Keeper) GetBonds(ctx context.Context) ([][]uint64, error) {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return nil, err
	}
	matrix := make([][]uint64, n)
	for uid := Uid(0); uid < n; uid++ {
		row, err := k.GetBondRow(ctx, uid)
		if err != nil {
			return nil, err
		}
		matrix[uid] = make([]uint64, n)
		for _, e := range row {
			if e.Uid < n {
				matrix[uid][e.Uid] = e.Bond
			}
		}
	}
	return matrix, nil
}

/// BOOTSTRAP SETTERS

// SetStakeFromVector overwrites every neuron's stake and recomputes TotalStake.
// The bank balances are left untouched.
func (k *Keeper) SetStakeFromVector(ctx context.Context, stake []uint64) error {
	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return err
	}
	var total uint64
	for i := range neurons {
		if i >= len(stake) {
			break
		}
		neurons[i].Stake = stake[i]
		total = subMath.SaturatingAdd(total, stake[i])
		if err := k.SetNeuron(ctx, neurons[i]); err != nil {
			return err
		}
	}
	return k.SetTotalStake(ctx, total)
}

func (k *Keeper) SetLastUpdateFromVector(ctx context.Context, lastUpdate []uint64) error {
	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return err
	}
	for i := range neurons {
		if i >= len(lastUpdate) {
			break
		}
		neurons[i].LastUpdate = lastUpdate[i]
		if err := k.SetNeuron(ctx, neurons[i]); err != nil {
			return err
		}
	}
	return nil
}

// SetWeightsFromMatrix stores the non-zero cells of a dense matrix as weight rows.
func (k *Keeper) SetWeightsFromMatrix(ctx context.Context, matrix [][]uint32) error {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return err
	}
	for uid := Uid(0); uid < n && int(uid) < len(matrix); uid++ {
		var row types.WeightRow
		for j, w := range matrix[uid] {
			if w != 0 && Uid(j) < n {
				row = append(row, types.WeightEntry{Uid: Uid(j), Weight: w})
			}
		}
		if err := k.SetWeightRow(ctx, uid, row); err != nil {
			return err
		}
	}
	return nil
}

// SetBondsFromMatrix stores the non-zero cells of a dense matrix as bond rows.
func (k *Keeper) SetBondsFromMatrix(ctx context.Context, matrix [][]uint64) error {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return err
	}
	for uid := Uid(0); uid < n && int(uid) < len(matrix); uid++ {
		var row types.BondRow
		for j, b := range matrix[uid] {
			if b != 0 && Uid(j) < n {
				row = append(row, types.BondEntry{Uid: Uid(j), Bond: b})
			}
		}
		if err := k.SetBondRow(ctx, uid, row); err != nil {
			return err
		}
	}
	return nil
}
