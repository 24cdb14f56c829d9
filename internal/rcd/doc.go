// Package rcd implements the Recursive Cognitive Dynamics recurrence.
//
// Three scalar state variables evolve over discrete steps:
//
//   - Hope (H)
//   - Memory (M), which receives a trauma shock every [ShockPeriod] steps
//   - Reinforcement (R), shifted each step by a [Drug] modulation
//
// [Simulate] produces a [Trajectory] from an immutable [Config]. Every
// right-hand read at step t uses the state at t-1, see [Next].
//
// # Example
//
//	tr := rcd.Simulate(rcd.Config{
//		Timesteps: 300, Alpha: 0.4, Beta: 0.5, Gamma: 0.6,
//		ShockIntensity: 0.3, Drug: rcd.DrugSSRI,
//	})
//	fmt.Println(tr.Final())
//
// # Thread Safety
//
// Simulate has no shared state and may be called concurrently. [RunAll]
// computes a batch of independent trajectories in parallel.
package rcd
