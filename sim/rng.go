package sim

import (
	"fmt"
	"hash/fnv"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two constellations built with the same SimulationKey and identical
// configuration MUST produce bit-for-bit identical noisy travel times for the
// same query sequence.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem names ===

// SubsystemOutbound returns the noise subsystem name of the positive-arm
// process on link.
func SubsystemOutbound(link int) string {
	return fmt.Sprintf("outbound_%d", link)
}

// SubsystemInbound returns the noise subsystem name of the negative-arm
// process on link.
func SubsystemInbound(link int) string {
	return fmt.Sprintf("inbound_%d", link)
}

// SubsystemForArm returns the noise subsystem feeding arm a.
func SubsystemForArm(a Arm) string {
	if a < 0 {
		return SubsystemInbound(a.Link())
	}
	return SubsystemOutbound(a.Link())
}

// === PartitionedRNG ===

// PartitionedRNG derives deterministic, isolated seeds per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Seeds rather than generators are handed out because noise sources reseed
// themselves on Reset and must return to the same sequence.
type PartitionedRNG struct {
	key SimulationKey
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key}
}

// SeedFor returns the derived seed of the named subsystem. The same name
// always yields the same seed.
func (p *PartitionedRNG) SeedFor(name string) int64 {
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
