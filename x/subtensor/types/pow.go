package types

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

const (
	// WorkLen is the size of a registration seal.
	WorkLen = 32

	// WorkBlockWindow bounds how many blocks old a registration's work may be.
	WorkBlockWindow = 3
)

// CreateSealHash returns keccak256(sha256(le64(blockNumber) || le64(nonce) || hotkey)).
func CreateSealHash(blockNumber, nonce uint64, hotkey []byte) []byte {
	preimage := make([]byte, 16, 16+len(hotkey))
	binary.LittleEndian.PutUint64(preimage[0:8], blockNumber)
	binary.LittleEndian.PutUint64(preimage[8:16], nonce)
	preimage = append(preimage, hotkey...)

	inner := sha256.Sum256(preimage)
	h := sha3.NewLegacyKeccak256()
	h.Write(inner[:])
	return h.Sum(nil)
}

// DifficultyTarget is the largest admissible work value, MaxUint256 / difficulty.
// A zero difficulty is treated as one.
func DifficultyTarget(difficulty uint64) *uint256.Int {
	if difficulty == 0 {
		difficulty = 1
	}
	target := new(uint256.Int).SetAllOne()
	return target.Div(target, uint256.NewInt(difficulty))
}

// SealMeetsDifficulty interprets work as a big-endian integer and compares it with
// the target for difficulty.
func SealMeetsDifficulty(work []byte, difficulty uint64) bool {
	value := new(uint256.Int).SetBytes(work)
	return !value.Gt(DifficultyTarget(difficulty))
}

// SolvePow searches nonces from startNonce until the seal for (blockNumber, nonce, hotkey)
// meets difficulty or ctx is done.
func SolvePow(ctx context.Context, blockNumber uint64, hotkey []byte, difficulty, startNonce uint64) (uint64, []byte, error) {
	for nonce := startNonce; ; nonce++ {
		if nonce&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return 0, nil, err
			}
		}
		work := CreateSealHash(blockNumber, nonce, hotkey)
		if SealMeetsDifficulty(work, difficulty) {
			return nonce, work, nil
		}
	}
}
